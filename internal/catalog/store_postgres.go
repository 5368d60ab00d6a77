package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"comparo/internal/domain"
)

// PostgresStore reads products from the catalog schema via pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (domain.Product, error) {
	const query = `
		SELECT id, slug, name,
		       COALESCE(affiliate_url, ''),
		       COALESCE(marketplace_url, '')
		FROM products
		WHERE slug = $1
	`
	var p domain.Product
	err := s.pool.QueryRow(ctx, query, slug).Scan(&p.ID, &p.Slug, &p.Name, &p.AffiliateURL, &p.MarketplaceURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, ErrNotFound
		}
		return domain.Product{}, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}
