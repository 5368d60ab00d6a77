package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comparo/internal/domain"
)

type failingProfileStore struct{ err error }

func (s failingProfileStore) FindRole(context.Context, string) (domain.Role, error) {
	return domain.RoleAnonymous, s.err
}

func TestValidateReturnsSubjectIdentity(t *testing.T) {
	tokens := NewTokenService("test-key", "comparo-test")
	provider := NewProvider(tokens, NewMemoryProfileStore())

	access, err := tokens.GenerateAccessToken("usr-1", "u@example.com", time.Minute)
	require.NoError(t, err)

	identity, err := provider.Validate(domain.Credential{AccessToken: access})
	require.NoError(t, err)
	assert.Equal(t, "usr-1", identity.UserID)
	assert.Equal(t, "u@example.com", identity.Email)
	assert.Equal(t, domain.RoleAnonymous, identity.Role)
}

func TestValidateRejectsInvalidCredential(t *testing.T) {
	provider := NewProvider(NewTokenService("test-key", "comparo-test"), NewMemoryProfileStore())

	_, err := provider.Validate(domain.Credential{AccessToken: "garbage"})
	assert.Error(t, err)
}

func TestResolveRoleFromProfile(t *testing.T) {
	profiles := NewMemoryProfileStore()
	profiles.SetRole("usr-1", domain.RoleAdmin)
	provider := NewProvider(NewTokenService("test-key", "comparo-test"), profiles)

	role, err := provider.ResolveRole(context.Background(), "usr-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestResolveRoleMissingProfileIsMember(t *testing.T) {
	// Identity confirmed, no profile row: that is a member, not an
	// error, so the gate sends them to /unauthorized rather than login.
	provider := NewProvider(NewTokenService("test-key", "comparo-test"), NewMemoryProfileStore())

	role, err := provider.ResolveRole(context.Background(), "usr-unknown")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, role)
}

func TestResolveRoleTransportErrorPropagates(t *testing.T) {
	backendErr := errors.New("connection refused")
	provider := NewProvider(NewTokenService("test-key", "comparo-test"), failingProfileStore{err: backendErr})

	_, err := provider.ResolveRole(context.Background(), "usr-1")
	assert.ErrorIs(t, err, backendErr)
}
