package service

import (
	"context"
	"fmt"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

type ProfileService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewProfileService(repo domain.Repository, logger *zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// UpdateProfile changes the editable fields only; email, role and password
// are managed elsewhere.
func (s *ProfileService) UpdateProfile(ctx context.Context, id int64, fullName, phone string) (*models.Profile, error) {
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrValidation)
	}
	return s.repo.UpdateProfile(ctx, id, fullName, phone)
}

func (s *ProfileService) ListGuests(ctx context.Context) ([]*models.Profile, error) {
	return s.repo.ListProfilesByRole(ctx, models.RoleGuest)
}

// SetRole flips a profile between the closed role set.
func (s *ProfileService) SetRole(ctx context.Context, email string, role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: role %q", ErrValidation, role)
	}
	if err := s.repo.SetProfileRole(ctx, email, role); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Str("role", string(role)).Msg("profile role changed")
	return nil
}
