package session

import (
	"context"
	"time"
)

// Record is the server-side half of a session: the durable token blob the
// original kept in client storage becomes a revocable store entry here.
type Record struct {
	ID        string    `json:"id"`
	ProfileID int64     `json:"profile_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists session records. A missing record means the session was
// revoked or expired; Get returns (nil, nil) in that case.
type Store interface {
	Save(ctx context.Context, record *Record, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}
