package service

import (
	"context"
	"os"
	"testing"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewAnalyticsService(repo, t.TempDir(), testLogger())

	repo.On("CountRoomsByStatus", ctx).Return(map[string]int{
		models.RoomAvailable: 3, models.RoomOccupied: 2,
	}, nil)
	repo.On("CountBookingsByStatus", ctx).Return(map[string]int{
		models.BookingPending: 1, models.BookingApproved: 2,
	}, nil)
	repo.On("CountOrdersByStatus", ctx).Return(map[string]int{
		models.OrderPending: 4,
	}, nil)
	repo.On("CountOpenMaintenanceByPriority", ctx).Return(map[string]int{
		models.PriorityLow: 1, models.PriorityHigh: 2,
	}, nil)
	repo.On("CountProfilesByRole", ctx, models.RoleGuest).Return(12, nil)
	repo.On("SumApprovedRevenue", ctx).Return(1500.0, nil)
	repo.On("SumDeliveredOrderAmount", ctx).Return(240.0, nil)

	stats, err := svc.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.RoomsByStatus[models.RoomAvailable])
	assert.Equal(t, 3, stats.OpenMaintenance)
	assert.Equal(t, 12, stats.TotalGuests)
	assert.InDelta(t, 1500, stats.ApprovedRevenue, 0.001)
	assert.InDelta(t, 240, stats.DeliveredFoodAmount, 0.001)
}

func TestExportBookings(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewAnalyticsService(repo, t.TempDir(), testLogger())

	start, end := day(0), day(7)
	repo.On("ListBookingsByDateRange", ctx, start, end).Return([]*models.Booking{
		{ID: 1, RoomID: 3, GuestID: 9, CheckIn: day(1), CheckOut: day(3),
			NumberOfGuests: 2, Status: models.BookingApproved, TotalPrice: 240},
	}, nil)
	repo.On("GetRoom", ctx, int64(3)).Return(&models.Room{ID: 3, Number: "301"}, nil)

	filePath, err := svc.ExportBookings(ctx, start, end)
	require.NoError(t, err)

	info, err := os.Stat(filePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Contains(t, filePath, start.Format(models.DateLayout))
}
