package identity

import (
	"context"
	"sync"

	"comparo/internal/domain"
)

// MemoryProfileStore keeps role attributes in process memory for tests and
// for running without Postgres.
type MemoryProfileStore struct {
	mu    sync.RWMutex
	roles map[string]domain.Role
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{roles: make(map[string]domain.Role)}
}

// SetRole seeds or updates a user's role.
func (s *MemoryProfileStore) SetRole(userID string, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = role
}

func (s *MemoryProfileStore) FindRole(_ context.Context, userID string) (domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if role, ok := s.roles[userID]; ok {
		return role, nil
	}
	return domain.RoleAnonymous, ErrProfileNotFound
}
