package service

import (
	"context"
	"fmt"

	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type MaintenanceService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewMaintenanceService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{repo: repo, eventBus: eventBus, logger: logger}
}

// OpenRequest files a maintenance request for a room. New requests always
// start pending regardless of the submitted status.
func (s *MaintenanceService) OpenRequest(ctx context.Context, req *models.MaintenanceRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(req.Priority) {
		return fmt.Errorf("%w: priority %q", ErrValidation, req.Priority)
	}
	if _, err := s.repo.GetRoom(ctx, req.RoomID); err != nil {
		return err
	}

	if err := s.repo.CreateMaintenanceRequest(ctx, req); err != nil {
		return err
	}

	s.publishEvent(events.EventMaintenanceOpened, req)
	return nil
}

func (s *MaintenanceService) GetRequest(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	return s.repo.GetMaintenanceRequest(ctx, id)
}

// Advance applies one status transition under the enumerated table.
func (s *MaintenanceService) Advance(ctx context.Context, id, version int64, to string) (*models.MaintenanceRequest, error) {
	req, err := s.repo.AdvanceMaintenanceRequest(ctx, id, version, to)
	if err != nil {
		return nil, err
	}

	s.publishEvent(events.EventMaintenanceUpdated, req)
	return req, nil
}

func (s *MaintenanceService) ListByGuest(ctx context.Context, guestID int64) ([]*models.MaintenanceRequest, error) {
	return s.repo.ListMaintenanceByGuest(ctx, guestID)
}

func (s *MaintenanceService) List(ctx context.Context, status string) ([]*models.MaintenanceRequest, error) {
	if status != "" && status != models.MaintenancePending && status != models.MaintenanceInProgress &&
		status != models.MaintenanceCompleted && status != models.MaintenanceCancelled {
		return nil, fmt.Errorf("%w: maintenance status %q", ErrValidation, status)
	}
	return s.repo.ListMaintenanceRequests(ctx, status)
}

// PutRoomUnderMaintenance flags the room and files a tracking request.
func (s *MaintenanceService) PutRoomUnderMaintenance(ctx context.Context, roomID, adminID int64, reason string) (*models.MaintenanceRequest, error) {
	if err := s.repo.SetRoomStatus(ctx, roomID, models.RoomMaintenance); err != nil {
		return nil, err
	}

	req := &models.MaintenanceRequest{
		RoomID:      roomID,
		GuestID:     adminID,
		Title:       "room taken out of service",
		Description: reason,
		Priority:    models.PriorityHigh,
	}
	if err := s.repo.CreateMaintenanceRequest(ctx, req); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventMaintenanceOpened, req)
	return req, nil
}

func (s *MaintenanceService) publishEvent(eventType string, req *models.MaintenanceRequest) {
	if s.eventBus == nil {
		return
	}

	payload := events.MaintenanceEventPayload{
		RequestID: req.ID,
		RoomID:    req.RoomID,
		GuestID:   req.GuestID,
		Status:    req.Status,
		Priority:  req.Priority,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("request_id", req.ID).Msg("publish event error")
	}
}
