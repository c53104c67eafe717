package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in-process. It backs tests and serves as the
// failover target when Redis is unreachable.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryEntry
}

type memoryEntry struct {
	record    Record
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Save(_ context.Context, record *Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = memoryEntry{record: *record, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	entry, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return nil, nil
	}

	record := entry.record
	return &record, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
