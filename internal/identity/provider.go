// Package identity resolves "who is this credential" and "what may they
// do". Validation is local (JWT), role resolution goes to the profile
// backend; the two failure modes are kept distinct because the gate treats
// them differently.
package identity

import (
	"context"
	"errors"
	"fmt"

	"comparo/internal/domain"
)

// ErrProfileNotFound signals a successful lookup that found no profile
// row. Distinct from transport errors: the identity is confirmed, only the
// privilege is missing.
var ErrProfileNotFound = errors.New("identity: profile not found")

// ProfileStore resolves a user's stored role attribute.
type ProfileStore interface {
	FindRole(ctx context.Context, userID string) (domain.Role, error)
}

// Provider validates credentials and resolves subject identities.
type Provider struct {
	tokens   *TokenService
	profiles ProfileStore
}

func NewProvider(tokens *TokenService, profiles ProfileStore) *Provider {
	return &Provider{tokens: tokens, profiles: profiles}
}

// Validate checks the credential's access token and returns the subject it
// identifies. The role is not resolved here; callers that need it follow
// up with ResolveRole.
func (p *Provider) Validate(cred domain.Credential) (domain.Identity, error) {
	claims, err := p.tokens.ValidateToken(cred.AccessToken)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   domain.RoleAnonymous, // unresolved until ResolveRole
	}, nil
}

// ResolveRole looks up the subject's role attribute. A missing profile row
// resolves to the member role: the identity is confirmed, it just carries
// no elevated privilege. Transport errors propagate so the gate can fail
// closed.
func (p *Provider) ResolveRole(ctx context.Context, userID string) (domain.Role, error) {
	role, err := p.profiles.FindRole(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return domain.RoleMember, nil
	}
	if err != nil {
		return domain.RoleAnonymous, fmt.Errorf("resolve role: %w", err)
	}
	return role, nil
}
