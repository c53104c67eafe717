package service

import (
	"context"
	"fmt"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type MenuService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewMenuService(repo domain.Repository, logger *zerolog.Logger) *MenuService {
	return &MenuService{repo: repo, logger: logger}
}

func validateMenuItem(item *models.MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	return nil
}

func (s *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *MenuService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

// ListItems returns the menu. Guests see only available items; admins pass
// onlyAvailable=false to manage the full list.
func (s *MenuService) ListItems(ctx context.Context, onlyAvailable bool) ([]*models.MenuItem, error) {
	return s.repo.ListMenuItems(ctx, onlyAvailable)
}

func (s *MenuService) UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	return s.repo.UpdateMenuItem(ctx, item)
}

func (s *MenuService) DeleteItem(ctx context.Context, id int64) error {
	return s.repo.DeleteMenuItem(ctx, id)
}
