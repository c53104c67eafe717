package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// FailoverStore prefers the primary store and falls back when it errors.
// After a failure the primary is retried at most once a minute.
type FailoverStore struct {
	primary   Store
	fallback  Store
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverStore(primary, fallback Store, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{primary: primary, fallback: fallback, logger: logger}
}

func (s *FailoverStore) markDown(err error) {
	s.logger.Error().Err(err).Msg("primary session store failed, falling back to memory")
	s.isDown.Store(true)
	s.lastCheck.Store(time.Now().UnixNano())
}

func (s *FailoverStore) shouldRetryPrimary() bool {
	if !s.isDown.Load() {
		return true
	}
	last := time.Unix(0, s.lastCheck.Load())
	if time.Since(last) > time.Minute {
		s.lastCheck.Store(time.Now().UnixNano())
		return true
	}
	return false
}

func (s *FailoverStore) Save(ctx context.Context, record *Record, ttl time.Duration) error {
	if s.shouldRetryPrimary() {
		if err := s.primary.Save(ctx, record, ttl); err == nil {
			s.isDown.Store(false)
			// Mirror into the fallback so reads survive a later outage.
			_ = s.fallback.Save(ctx, record, ttl)
			return nil
		} else {
			s.markDown(err)
		}
	}
	return s.fallback.Save(ctx, record, ttl)
}

func (s *FailoverStore) Get(ctx context.Context, id string) (*Record, error) {
	if s.shouldRetryPrimary() {
		record, err := s.primary.Get(ctx, id)
		if err == nil {
			s.isDown.Store(false)
			return record, nil
		}
		s.markDown(err)
	}
	return s.fallback.Get(ctx, id)
}

func (s *FailoverStore) Delete(ctx context.Context, id string) error {
	var primaryErr error
	if s.shouldRetryPrimary() {
		primaryErr = s.primary.Delete(ctx, id)
		if primaryErr == nil {
			s.isDown.Store(false)
		} else {
			s.markDown(primaryErr)
		}
	}
	// Revocation must reach the fallback regardless of primary health.
	return s.fallback.Delete(ctx, id)
}
