// Package catalog resolves product slugs to their records. The redirect
// flow only needs identity and outbound URLs; the rest of the catalog is
// owned by the back office.
package catalog

import (
	"context"
	"errors"

	"comparo/internal/domain"
)

// ErrNotFound is returned when a slug does not resolve to a product.
var ErrNotFound = errors.New("catalog: product not found")

// Store is interface-driven so the resolver can be tested against an
// in-memory catalog and run against Postgres in production.
type Store interface {
	FindBySlug(ctx context.Context, slug string) (domain.Product, error)
}
