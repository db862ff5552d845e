package domain

import "time"

// Role is carried in access tokens so the backend can gate creator routes.
type Role string

const (
	RoleFan     Role = "fan"
	RoleCreator Role = "creator"
)

// RoleOf returns the token role for u.
func RoleOf(u *User) Role {
	if u != nil && u.IsCreator {
		return RoleCreator
	}
	return RoleFan
}

// TokenInfo is what the client can learn from its bearer token without
// verifying it.
type TokenInfo struct {
	SubjectID string
	Role      Role
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Expired reports whether the token is past its expiry at now. Tokens
// without an expiry never expire.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}
