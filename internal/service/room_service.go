package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// ErrValidation wraps input problems the API maps to a bad request.
var ErrValidation = errors.New("validation failed")

type RoomService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRoomService(repo domain.Repository, logger *zerolog.Logger) *RoomService {
	return &RoomService{repo: repo, logger: logger}
}

func validateRoom(room *models.Room) error {
	if room.Number == "" {
		return fmt.Errorf("%w: number is required", ErrValidation)
	}
	if room.PricePerNight <= 0 {
		return fmt.Errorf("%w: price_per_night must be positive", ErrValidation)
	}
	if room.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	return nil
}

func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := validateRoom(room); err != nil {
		return err
	}
	return s.repo.CreateRoom(ctx, room)
}

func (s *RoomService) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *RoomService) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	return s.repo.GetRoomByNumber(ctx, number)
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*models.Room, error) {
	return s.repo.ListRooms(ctx)
}

// SearchAvailable lists rooms free for the whole stay with enough capacity.
func (s *RoomService) SearchAvailable(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]*models.Room, error) {
	if checkOut.Before(checkIn) {
		return nil, database.ErrDateOrder
	}
	if guests < 1 {
		guests = 1
	}
	return s.repo.ListAvailableRooms(ctx, checkIn, checkOut, guests)
}

func (s *RoomService) UpdateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := validateRoom(room); err != nil {
		return nil, err
	}
	return s.repo.UpdateRoom(ctx, room)
}

// SetStatus changes the stored room status. Only available and maintenance
// are storable; occupied is derived and cannot be assigned.
func (s *RoomService) SetStatus(ctx context.Context, id int64, status string) error {
	if status != models.RoomAvailable && status != models.RoomMaintenance {
		return fmt.Errorf("%w: room status %q", database.ErrInvalidTransition, status)
	}
	if err := s.repo.SetRoomStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info().Int64("room_id", id).Str("status", status).Msg("room status changed")
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, id int64) error {
	return s.repo.DeleteRoom(ctx, id)
}
