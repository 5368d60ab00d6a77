// Package session persists the authentication credential between visits.
// One abstraction covers both persistence policies: durable sessions
// survive browser restarts, ephemeral ones are scoped to a tab's lifetime.
// Callers ask for "the current credential" and never learn which policy
// stored it.
package session

import (
	"context"
	"errors"

	"comparo/internal/domain"
)

// ErrNotFound is returned when no credential exists for a session ID.
var ErrNotFound = errors.New("session: credential not found")

// Store is interface-driven to keep the gate testable and to allow
// swapping in-memory and Redis persistence without rewiring business code.
type Store interface {
	// Find returns the credential for a session ID, or ErrNotFound.
	Find(ctx context.Context, sessionID string) (domain.Credential, error)
	// Save persists a credential. The durable flag selects the
	// persistence-duration policy; it does not change the read path.
	Save(ctx context.Context, sessionID string, cred domain.Credential, durable bool) error
	// Delete removes the credential. Deleting an absent session is a no-op.
	Delete(ctx context.Context, sessionID string) error
}
