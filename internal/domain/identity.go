package domain

import "time"

// Role is the authorization attribute attached to a resolved identity.
// The set is closed; anything the backend hands us outside of it collapses
// to RoleAnonymous so downstream checks stay total.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMember    Role = "member"
	RoleAnonymous Role = "anonymous"
)

// ParseRole maps a raw role string onto the closed role set.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleMember:
		return RoleMember
	default:
		return RoleAnonymous
	}
}

// Credential is the access/refresh token pair persisted by the session
// store. It is opaque to everything except the identity provider.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the credential's own expiry has passed. The
// identity provider still has the final word when validating the token.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Identity is a resolved user: who the credential belongs to and what they
// are allowed to do. Derived per request, never persisted by the core.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}

// User is the stored account record backing login. Password handling lives
// in the auth service; the hash never leaves the storage layer otherwise.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
}
