package session

import (
	"context"
	"sync"
	"time"

	"comparo/internal/domain"
)

// MemoryStore keeps credentials in process memory. It honors the same
// TTL policy split as the Redis store so gate tests exercise expiry.
type MemoryStore struct {
	mu           sync.RWMutex
	creds        map[string]memoryEntry
	durableTTL   time.Duration
	ephemeralTTL time.Duration
	clock        func() time.Time
}

type memoryEntry struct {
	cred      domain.Credential
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewMemoryStore(durableTTL, ephemeralTTL time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		creds:        make(map[string]memoryEntry),
		durableTTL:   durableTTL,
		ephemeralTTL: ephemeralTTL,
		clock:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *MemoryStore) Find(_ context.Context, sessionID string) (domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.creds[sessionID]
	if !ok {
		return domain.Credential{}, ErrNotFound
	}
	if s.clock().After(entry.expiresAt) {
		// Evict on read so a long-lived process does not pile up dead
		// sessions.
		delete(s.creds, sessionID)
		return domain.Credential{}, ErrNotFound
	}
	return entry.cred, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, cred domain.Credential, durable bool) error {
	ttl := s.ephemeralTTL
	if durable {
		ttl = s.durableTTL
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[sessionID] = memoryEntry{cred: cred, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, sessionID)
	return nil
}
