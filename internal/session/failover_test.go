package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	deletes int
}

func (s *brokenStore) Save(context.Context, *Record, time.Duration) error {
	return errors.New("store down")
}

func (s *brokenStore) Get(context.Context, string) (*Record, error) {
	return nil, errors.New("store down")
}

func (s *brokenStore) Delete(context.Context, string) error {
	s.deletes++
	return errors.New("store down")
}

func TestFailoverStoreFallsBack(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	primary := &brokenStore{}
	fallback := NewMemoryStore()
	store := NewFailoverStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("f1"), time.Hour))

	got, err := store.Get(ctx, "f1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ProfileID)
}

func TestFailoverStoreHealthyPrimary(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	primary := NewMemoryStore()
	fallback := NewMemoryStore()
	store := NewFailoverStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testRecord("f2"), time.Hour))

	// Writes land in both stores so reads survive a later outage.
	fromPrimary, err := primary.Get(ctx, "f2")
	require.NoError(t, err)
	assert.NotNil(t, fromPrimary)
	fromFallback, err := fallback.Get(ctx, "f2")
	require.NoError(t, err)
	assert.NotNil(t, fromFallback)
}

func TestFailoverStoreDeleteReachesFallback(t *testing.T) {
	logger := zerolog.New(os.Stdout)
	primary := &brokenStore{}
	fallback := NewMemoryStore()
	store := NewFailoverStore(primary, fallback, &logger)
	ctx := context.Background()

	require.NoError(t, fallback.Save(ctx, testRecord("f3"), time.Hour))
	require.NoError(t, store.Delete(ctx, "f3"))

	gone, err := fallback.Get(ctx, "f3")
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, 1, primary.deletes)
}
