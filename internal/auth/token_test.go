package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	user := &domain.User{ID: "u1", IsCreator: true}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(5*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.Subject)
	require.Equal(t, domain.RoleCreator, claims.Role)

	_, err = NewTokenManager("other", 5).ParseToken(token)
	require.Error(t, err)
}

func TestPeekClaimsIgnoresSignature(t *testing.T) {
	token, exp, err := NewTokenManager("server-only", 10).GenerateToken(&domain.User{ID: "fan-1"})
	require.NoError(t, err)

	info, err := PeekClaims(token)
	require.NoError(t, err)
	require.Equal(t, "fan-1", info.SubjectID)
	require.Equal(t, domain.RoleFan, info.Role)
	require.WithinDuration(t, exp, info.ExpiresAt, time.Second)
	require.False(t, info.Expired(time.Now()))
	require.True(t, info.Expired(exp.Add(time.Second)))

	_, err = PeekClaims("not-a-jwt")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "hunter22"))
	require.Error(t, ComparePassword(hash, "hunter23"))
}
