package identity

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"comparo/internal/domain"
)

// PostgresProfileStore resolves roles from the profiles table.
type PostgresProfileStore struct {
	db *sql.DB
}

func NewPostgresProfileStore(db *sql.DB) *PostgresProfileStore {
	return &PostgresProfileStore{db: db}
}

func (s *PostgresProfileStore) FindRole(ctx context.Context, userID string) (domain.Role, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT role FROM profiles WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.RoleAnonymous, ErrProfileNotFound
		}
		return domain.RoleAnonymous, fmt.Errorf("find role: %w", err)
	}
	return domain.ParseRole(raw), nil
}
