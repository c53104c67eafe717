package database

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	return db
}

func createTestRoom(t *testing.T, db *DB, number string) *models.Room {
	room := &models.Room{
		Number:        number,
		Type:          "double",
		PricePerNight: 100,
		Capacity:      2,
		Floor:         1,
		Amenities:     []string{"wifi"},
	}
	require.NoError(t, db.CreateRoom(context.Background(), room))
	return room
}

func createTestGuest(t *testing.T, db *DB, email string) *models.Profile {
	profile := &models.Profile{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test Guest",
		Role:         models.RoleGuest,
	}
	require.NoError(t, db.CreateProfile(context.Background(), profile))
	return profile
}

func day(offset int) time.Time {
	return time.Now().AddDate(0, 0, offset).Truncate(24 * time.Hour)
}

func TestBookRoom(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	room := createTestRoom(t, db, "101")
	guest := createTestGuest(t, db, "guest@example.com")

	booking, err := db.BookRoom(ctx, BookRoomParams{
		RoomID:         room.ID,
		GuestID:        guest.ID,
		CheckIn:        day(1),
		CheckOut:       day(3),
		NumberOfGuests: 2,
		TotalPrice:     200,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, int64(1), booking.Version)
	assert.InDelta(t, 200, booking.TotalPrice, 0.001)

	t.Run("overlap rejected", func(t *testing.T) {
		other := createTestGuest(t, db, "other@example.com")
		_, err := db.BookRoom(ctx, BookRoomParams{
			RoomID: room.ID, GuestID: other.ID,
			CheckIn: day(2), CheckOut: day(5), NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("touching checkout day rejected", func(t *testing.T) {
		// Check-out day is still held, so a booking starting on it collides.
		other := createTestGuest(t, db, "touch@example.com")
		_, err := db.BookRoom(ctx, BookRoomParams{
			RoomID: room.ID, GuestID: other.ID,
			CheckIn: day(3), CheckOut: day(6), NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, ErrRoomUnavailable)
	})

	t.Run("second active booking rejected", func(t *testing.T) {
		second := createTestRoom(t, db, "102")
		_, err := db.BookRoom(ctx, BookRoomParams{
			RoomID: second.ID, GuestID: guest.ID,
			CheckIn: day(10), CheckOut: day(12), NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, ErrActiveBookingExists)
	})

	t.Run("maintenance room rejected", func(t *testing.T) {
		closed := createTestRoom(t, db, "103")
		require.NoError(t, db.SetRoomStatus(ctx, closed.ID, models.RoomMaintenance))

		fresh := createTestGuest(t, db, "fresh@example.com")
		_, err := db.BookRoom(ctx, BookRoomParams{
			RoomID: closed.ID, GuestID: fresh.ID,
			CheckIn: day(1), CheckOut: day(2), NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, ErrRoomUnderMaintenance)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := db.BookRoom(ctx, BookRoomParams{
			RoomID: 9999, GuestID: guest.ID,
			CheckIn: day(1), CheckOut: day(2), NumberOfGuests: 1,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestApproveBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	room := createTestRoom(t, db, "201")
	guest := createTestGuest(t, db, "approve@example.com")

	booking, err := db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: guest.ID,
		CheckIn: day(0), CheckOut: day(2), NumberOfGuests: 1, TotalPrice: 200,
	})
	require.NoError(t, err)

	t.Run("version mismatch", func(t *testing.T) {
		_, err := db.ApproveBooking(ctx, booking.ID, booking.Version+5)
		assert.ErrorIs(t, err, ErrConcurrentModification)
	})

	approved, err := db.ApproveBooking(ctx, booking.ID, booking.Version)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, approved.Status)
	assert.Equal(t, booking.Version+1, approved.Version)

	t.Run("approval is terminal", func(t *testing.T) {
		_, err := db.ApproveBooking(ctx, booking.ID, approved.Version)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = db.RejectBooking(ctx, booking.ID, approved.Version)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("room reads occupied without stored mutation", func(t *testing.T) {
		got, err := db.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoomOccupied, got.Status)

		// The stored column is untouched; occupied is derived.
		var stored string
		require.NoError(t, db.QueryRowContext(ctx,
			`SELECT status FROM rooms WHERE id = ?`, room.ID).Scan(&stored))
		assert.Equal(t, models.RoomAvailable, stored)
	})

	t.Run("current stay resolves", func(t *testing.T) {
		stay, err := db.GetCurrentApprovedBooking(ctx, guest.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.ID, stay.ID)
	})
}

func TestRejectBooking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	room := createTestRoom(t, db, "202")
	guest := createTestGuest(t, db, "reject@example.com")

	booking, err := db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: guest.ID,
		CheckIn: day(1), CheckOut: day(2), NumberOfGuests: 1,
	})
	require.NoError(t, err)

	rejected, err := db.RejectBooking(ctx, booking.ID, booking.Version)
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, rejected.Status)

	// A rejected booking frees the guest and the room.
	_, err = db.GetActiveBookingForGuest(ctx, guest.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: guest.ID,
		CheckIn: day(1), CheckOut: day(2), NumberOfGuests: 1,
	})
	assert.NoError(t, err)
}

func TestApproveBookingCollision(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	room := createTestRoom(t, db, "203")
	first := createTestGuest(t, db, "first@example.com")
	second := createTestGuest(t, db, "second@example.com")

	a, err := db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: first.ID,
		CheckIn: day(1), CheckOut: day(3), NumberOfGuests: 1,
	})
	require.NoError(t, err)
	_, err = db.ApproveBooking(ctx, a.ID, a.Version)
	require.NoError(t, err)

	b, err := db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: second.ID,
		CheckIn: day(5), CheckOut: day(7), NumberOfGuests: 1,
	})
	require.NoError(t, err)

	// BookRoom never lets overlapping bookings coexist, so force the overlap
	// directly to prove approval re-checks collisions on its own.
	_, err = db.ExecContext(ctx, `UPDATE bookings SET check_in = ?, check_out = ? WHERE id = ?`,
		day(2).Format(models.DateLayout), day(4).Format(models.DateLayout), b.ID)
	require.NoError(t, err)

	_, err = db.ApproveBooking(ctx, b.ID, b.Version)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestConcurrentBookRoom(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	dbPath := filepath.Join(t.TempDir(), "concurrency.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	room := createTestRoom(t, db, "301")

	const numGoroutines = 10
	guests := make([]*models.Profile, numGoroutines)
	for i := range guests {
		guests[i] = createTestGuest(t, db, "concurrent"+string(rune('a'+i))+"@example.com")
	}

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(guestID int64) {
			defer wg.Done()
			_, bErr := db.BookRoom(ctx, BookRoomParams{
				RoomID: room.ID, GuestID: guestID,
				CheckIn: day(1), CheckOut: day(3), NumberOfGuests: 1,
			})
			results <- bErr
		}(guests[i].ID)
	}

	wg.Wait()
	close(results)

	successCount := 0
	for err := range results {
		if err == nil {
			successCount++
		} else {
			assert.ErrorIs(t, err, ErrRoomUnavailable)
		}
	}
	assert.Equal(t, 1, successCount, "exactly one overlapping booking may win")

	bookings, err := db.ListBookingsByDateRange(ctx, day(1), day(3))
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestListBookings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	room := createTestRoom(t, db, "401")
	guest := createTestGuest(t, db, "list@example.com")

	booking, err := db.BookRoom(ctx, BookRoomParams{
		RoomID: room.ID, GuestID: guest.ID,
		CheckIn: day(1), CheckOut: day(3), NumberOfGuests: 1, TotalPrice: 200,
	})
	require.NoError(t, err)

	byGuest, err := db.ListBookingsByGuest(ctx, guest.ID)
	require.NoError(t, err)
	require.Len(t, byGuest, 1)
	assert.Equal(t, booking.ID, byGuest[0].ID)

	pending, err := db.ListBookingsByStatus(ctx, models.BookingPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	inRange, err := db.ListBookingsByDateRange(ctx, day(0), day(10))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	outOfRange, err := db.ListBookingsByDateRange(ctx, day(5), day(10))
	require.NoError(t, err)
	assert.Empty(t, outOfRange)

	counts, err := db.CountBookingsByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.BookingPending])

	_, err = db.ApproveBooking(ctx, booking.ID, booking.Version)
	require.NoError(t, err)

	revenue, err := db.SumApprovedRevenue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 200, revenue, 0.001)
}
