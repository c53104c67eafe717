package service

import (
	"context"
	"errors"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo           domain.Repository
	eventBus       domain.EventPublisher
	maxBookingDays int
	logger         *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, maxBookingDays int, logger *zerolog.Logger) *BookingService {
	if maxBookingDays <= 0 {
		maxBookingDays = 365
	}
	return &BookingService{
		repo:           repo,
		eventBus:       eventBus,
		maxBookingDays: maxBookingDays,
		logger:         logger,
	}
}

// ValidateDates checks a check-in/check-out pair against the booking window.
func (s *BookingService) ValidateDates(checkIn, checkOut time.Time) error {
	// The gateway compares stored calendar dates; derive today the same way
	// so the check never shifts around midnight in non-UTC timezones.
	today, _ := time.Parse(models.DateLayout, time.Now().Format(models.DateLayout))

	if checkIn.Before(today) {
		return database.ErrPastDate
	}
	if checkOut.Before(checkIn) {
		return database.ErrDateOrder
	}
	if checkIn.After(today.AddDate(0, 0, s.maxBookingDays)) {
		return database.ErrDateTooFar
	}
	return nil
}

// RequestBooking validates the request, prices the stay and runs the atomic
// booking procedure. The total is computed server-side from the room's
// nightly rate; client-supplied totals are ignored.
func (s *BookingService) RequestBooking(ctx context.Context, guestID, roomID int64, checkIn, checkOut time.Time, guests int) (*models.Booking, error) {
	if err := s.ValidateDates(checkIn, checkOut); err != nil {
		return nil, err
	}

	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if guests > room.Capacity {
		return nil, database.ErrCapacityExceeded
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights == 0 {
		// Same-day stay still bills one night.
		nights = 1
	}

	booking, err := s.repo.BookRoom(ctx, database.BookRoomParams{
		RoomID:         roomID,
		GuestID:        guestID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: guests,
		TotalPrice:     float64(nights) * room.PricePerNight,
	})
	if err != nil {
		metrics.IncBooking("conflict")
		return nil, err
	}

	metrics.IncBooking("created")
	s.publishEvent(events.EventBookingCreated, booking, room.Number, 0)
	return booking, nil
}

// Approve moves a pending booking to approved. The room row is untouched:
// occupancy is derived from approved bookings at read time.
func (s *BookingService) Approve(ctx context.Context, bookingID, version, adminID int64) (*models.Booking, error) {
	booking, err := s.repo.ApproveBooking(ctx, bookingID, version)
	if err != nil {
		return nil, err
	}

	metrics.IncBooking("approved")
	s.publishEvent(events.EventBookingApproved, booking, "", adminID)
	return booking, nil
}

// Reject moves a pending booking to rejected.
func (s *BookingService) Reject(ctx context.Context, bookingID, version, adminID int64) (*models.Booking, error) {
	booking, err := s.repo.RejectBooking(ctx, bookingID, version)
	if err != nil {
		return nil, err
	}

	metrics.IncBooking("rejected")
	s.publishEvent(events.EventBookingRejected, booking, "", adminID)
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) ListByGuest(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	return s.repo.ListBookingsByGuest(ctx, guestID)
}

func (s *BookingService) ListByStatus(ctx context.Context, status string) ([]*models.Booking, error) {
	return s.repo.ListBookingsByStatus(ctx, status)
}

func (s *BookingService) ListByDateRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	return s.repo.ListBookingsByDateRange(ctx, start, end)
}

// CurrentStay returns the guest's approved booking covering today, or nil
// when the guest is not currently checked in.
func (s *BookingService) CurrentStay(ctx context.Context, guestID int64) (*models.Booking, error) {
	booking, err := s.repo.GetCurrentApprovedBooking(ctx, guestID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	return booking, err
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, roomNumber string, changedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		RoomNumber: roomNumber,
		GuestID:    booking.GuestID,
		Status:     booking.Status,
		CheckIn:    booking.CheckIn.Format(models.DateLayout),
		CheckOut:   booking.CheckOut.Format(models.DateLayout),
		ChangedBy:  changedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
