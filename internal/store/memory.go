package store

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps challenge records in process memory. Suitable for tests
// and single-instance deployments; records do not survive a restart, which
// is acceptable for short-lived challenges.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	// now is swappable for expiry tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put stores the payload with an absolute expiry timestamp. A fraction of
// writes opportunistically sweeps expired entries so an idle map does not
// grow without bound.
func (s *MemoryStore) Put(_ context.Context, id string, payload []byte, ttl time.Duration) error {
	buf := make([]byte, len(payload))
	copy(buf, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	if rand.Float64() < 0.1 {
		s.sweepLocked()
	}
	s.entries[id] = memoryEntry{payload: buf, expiresAt: s.now().Add(ttl)}
	return nil
}

// Take fetches and deletes under one lock acquisition, so concurrent takes
// of the same id observe the record at most once.
func (s *MemoryStore) Take(_ context.Context, id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	delete(s.entries, id)
	if s.now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.payload, nil
}

// Len returns the number of live entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
