package service

import (
	"context"
	"io"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateProfile(ctx context.Context, p *models.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockRepo) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *mockRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *mockRepo) UpdateProfile(ctx context.Context, id int64, fullName, phone string) (*models.Profile, error) {
	args := m.Called(ctx, id, fullName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *mockRepo) ListProfilesByRole(ctx context.Context, role models.Role) ([]*models.Profile, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}
func (m *mockRepo) CountProfilesByRole(ctx context.Context, role models.Role) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) SetProfileRole(ctx context.Context, email string, role models.Role) error {
	return m.Called(ctx, email, role).Error(0)
}

func (m *mockRepo) CreateRoom(ctx context.Context, room *models.Room) error {
	return m.Called(ctx, room).Error(0)
}
func (m *mockRepo) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) ListRooms(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockRepo) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*models.Room, error) {
	args := m.Called(ctx, checkIn, checkOut, guests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockRepo) UpdateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) SetRoomStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *mockRepo) DeleteRoom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) CountRoomsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockRepo) BookRoom(ctx context.Context, p database.BookRoomParams) (*models.Booking, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) ApproveBooking(ctx context.Context, id, version int64) (*models.Booking, error) {
	args := m.Called(ctx, id, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) RejectBooking(ctx context.Context, id, version int64) (*models.Booking, error) {
	args := m.Called(ctx, id, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookingsByGuest(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookingsByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetActiveBookingForGuest(ctx context.Context, guestID int64) (*models.Booking, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) GetCurrentApprovedBooking(ctx context.Context, guestID int64) (*models.Booking, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) CountBookingsByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
func (m *mockRepo) SumApprovedRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockRepo) CreateMaintenanceRequest(ctx context.Context, req *models.MaintenanceRequest) error {
	return m.Called(ctx, req).Error(0)
}
func (m *mockRepo) GetMaintenanceRequest(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}
func (m *mockRepo) AdvanceMaintenanceRequest(ctx context.Context, id, version int64, to string) (*models.MaintenanceRequest, error) {
	args := m.Called(ctx, id, version, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRequest), args.Error(1)
}
func (m *mockRepo) ListMaintenanceByGuest(ctx context.Context, guestID int64) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}
func (m *mockRepo) ListMaintenanceRequests(ctx context.Context, status string) ([]*models.MaintenanceRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaintenanceRequest), args.Error(1)
}
func (m *mockRepo) CountOpenMaintenanceByPriority(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *mockRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *mockRepo) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}
func (m *mockRepo) ListMenuItems(ctx context.Context, onlyAvailable bool) ([]*models.MenuItem, error) {
	args := m.Called(ctx, onlyAvailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}
func (m *mockRepo) UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}
func (m *mockRepo) DeleteMenuItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) CreateFoodOrder(ctx context.Context, order *models.FoodOrder) error {
	return m.Called(ctx, order).Error(0)
}
func (m *mockRepo) GetFoodOrder(ctx context.Context, id int64) (*models.FoodOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodOrder), args.Error(1)
}
func (m *mockRepo) ListFoodOrdersByGuest(ctx context.Context, guestID int64) ([]*models.FoodOrder, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FoodOrder), args.Error(1)
}
func (m *mockRepo) ListFoodOrders(ctx context.Context, status string) ([]*models.FoodOrder, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FoodOrder), args.Error(1)
}
func (m *mockRepo) AdvanceFoodOrder(ctx context.Context, id, version int64, to string) (*models.FoodOrder, error) {
	args := m.Called(ctx, id, version, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodOrder), args.Error(1)
}
func (m *mockRepo) SetOrderPaymentStatus(ctx context.Context, id int64, paymentStatus string) error {
	return m.Called(ctx, id, paymentStatus).Error(0)
}
func (m *mockRepo) CountOrdersByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}
func (m *mockRepo) SumDeliveredOrderAmount(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) PublishJSON(eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}
