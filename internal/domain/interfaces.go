package domain

import (
	"context"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"
)

// Repository is the full data access surface the services depend on.
// *database.DB satisfies it; tests substitute mocks.
type Repository interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, fullName, phone string) (*models.Profile, error)
	ListProfilesByRole(ctx context.Context, role models.Role) ([]*models.Profile, error)
	CountProfilesByRole(ctx context.Context, role models.Role) (int, error)
	SetProfileRole(ctx context.Context, email string, role models.Role) error

	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*models.Room, error)
	ListRooms(ctx context.Context) ([]*models.Room, error)
	ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) (*models.Room, error)
	SetRoomStatus(ctx context.Context, id int64, status string) error
	DeleteRoom(ctx context.Context, id int64) error
	CountRoomsByStatus(ctx context.Context) (map[string]int, error)

	BookRoom(ctx context.Context, p database.BookRoomParams) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ApproveBooking(ctx context.Context, id, version int64) (*models.Booking, error)
	RejectBooking(ctx context.Context, id, version int64) (*models.Booking, error)
	ListBookingsByGuest(ctx context.Context, guestID int64) ([]*models.Booking, error)
	ListBookingsByStatus(ctx context.Context, status string) ([]*models.Booking, error)
	ListBookingsByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error)
	GetActiveBookingForGuest(ctx context.Context, guestID int64) (*models.Booking, error)
	GetCurrentApprovedBooking(ctx context.Context, guestID int64) (*models.Booking, error)
	CountBookingsByStatus(ctx context.Context) (map[string]int, error)
	SumApprovedRevenue(ctx context.Context) (float64, error)

	CreateMaintenanceRequest(ctx context.Context, m *models.MaintenanceRequest) error
	GetMaintenanceRequest(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	AdvanceMaintenanceRequest(ctx context.Context, id, version int64, to string) (*models.MaintenanceRequest, error)
	ListMaintenanceByGuest(ctx context.Context, guestID int64) ([]*models.MaintenanceRequest, error)
	ListMaintenanceRequests(ctx context.Context, status string) ([]*models.MaintenanceRequest, error)
	CountOpenMaintenanceByPriority(ctx context.Context) (map[string]int, error)

	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, onlyAvailable bool) ([]*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error

	CreateFoodOrder(ctx context.Context, order *models.FoodOrder) error
	GetFoodOrder(ctx context.Context, id int64) (*models.FoodOrder, error)
	ListFoodOrdersByGuest(ctx context.Context, guestID int64) ([]*models.FoodOrder, error)
	ListFoodOrders(ctx context.Context, status string) ([]*models.FoodOrder, error)
	AdvanceFoodOrder(ctx context.Context, id, version int64, to string) (*models.FoodOrder, error)
	SetOrderPaymentStatus(ctx context.Context, id int64, paymentStatus string) error
	CountOrdersByStatus(ctx context.Context) (map[string]int, error)
	SumDeliveredOrderAmount(ctx context.Context) (float64, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
