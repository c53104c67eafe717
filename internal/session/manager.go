package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/auth"
	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCredentials is surfaced to the user on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionExpired means the token no longer maps to a live session;
	// the caller lands back in the unauthenticated state.
	ErrSessionExpired = errors.New("session expired or revoked")
)

// ProfileStore is the slice of the gateway the manager needs.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// Session is what a successful sign-in or restoration hands back.
type Session struct {
	Token   string
	Profile *models.Profile
}

// Manager owns the identity lifecycle: sign-up, sign-in, silent
// restoration and sign-out. There is no ambient current user; callers carry
// the returned profile explicitly.
type Manager struct {
	profiles ProfileStore
	tokens   *auth.TokenManager
	store    Store
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewManager(profiles ProfileStore, tokens *auth.TokenManager, store Store, ttl time.Duration, logger *zerolog.Logger) *Manager {
	return &Manager{
		profiles: profiles,
		tokens:   tokens,
		store:    store,
		ttl:      ttl,
		logger:   logger.With().Str("component", "session").Logger(),
	}
}

type SignUpParams struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// SignUp registers a guest profile and signs it in.
func (m *Manager) SignUp(ctx context.Context, p SignUpParams) (*Session, error) {
	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &models.Profile{
		Email:        p.Email,
		PasswordHash: hash,
		FullName:     p.FullName,
		Phone:        p.Phone,
		Role:         models.RoleGuest,
	}
	if err := m.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return m.establish(ctx, profile)
}

// SignIn verifies credentials and establishes a session. Any mismatch,
// including an unknown email, reads as invalid credentials.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := m.profiles.GetProfileByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(profile.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return m.establish(ctx, profile)
}

func (m *Manager) establish(ctx context.Context, profile *models.Profile) (*Session, error) {
	record := &Record{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		Role:      string(profile.Role),
		CreatedAt: time.Now(),
	}
	if err := m.store.Save(ctx, record, m.ttl); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	token, err := m.tokens.Generate(profile, record.ID)
	if err != nil {
		_ = m.store.Delete(ctx, record.ID)
		return nil, fmt.Errorf("sign token: %w", err)
	}

	m.logger.Info().Int64("profile_id", profile.ID).Str("role", string(profile.Role)).Msg("session established")
	return &Session{Token: token, Profile: profile}, nil
}

// Restore validates a persisted token and rebuilds the session: the profile
// is fetched fresh so a role change is picked up. Any validation failure
// clears the session record and reports expiry.
func (m *Manager) Restore(ctx context.Context, token string) (*Session, error) {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		return nil, ErrSessionExpired
	}

	record, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if record == nil {
		return nil, ErrSessionExpired
	}

	profile, err := m.profiles.GetProfile(ctx, record.ProfileID)
	if err != nil {
		_ = m.store.Delete(ctx, claims.ID)
		return nil, ErrSessionExpired
	}

	return &Session{Token: token, Profile: profile}, nil
}

// SignOut revokes the session server-side; the token is dead afterwards
// even if the client keeps it.
func (m *Manager) SignOut(ctx context.Context, token string) error {
	claims, err := m.tokens.Validate(token)
	if err != nil {
		// Nothing to revoke for an unparseable token.
		return nil
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	m.logger.Info().Int64("profile_id", claims.ProfileID).Msg("session revoked")
	return nil
}
