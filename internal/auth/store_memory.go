package auth

import (
	"context"
	"strings"
	"sync"

	"comparo/internal/domain"
)

// MemoryUserStore keeps accounts in process memory, keyed by lowercase
// email.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]domain.User)}
}

// Seed inserts or replaces users. Intended for tests and dev fixtures.
func (s *MemoryUserStore) Seed(users ...domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[strings.ToLower(u.Email)] = u
	}
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return domain.User{}, ErrUserNotFound
}
