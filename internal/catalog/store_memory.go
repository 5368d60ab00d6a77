package catalog

import (
	"context"
	"sync"

	"comparo/internal/domain"
)

// MemoryStore keeps products in process memory, keyed by slug.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[string]domain.Product)}
}

// Seed inserts or replaces products. Intended for tests and dev fixtures.
func (s *MemoryStore) Seed(products ...domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.Slug] = p
	}
}

func (s *MemoryStore) FindBySlug(_ context.Context, slug string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[slug]; ok {
		return p, nil
	}
	return domain.Product{}, ErrNotFound
}
