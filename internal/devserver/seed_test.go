package devserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/creatorhub/internal/config"
)

func getTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv := New(config.Config{
		App:  config.AppConfig{Name: "creatorhub-test"},
		Auth: config.AuthConfig{JWTSecret: "seed-secret", AccessTokenTTLMinutes: 5, PasswordResetTTLMinutes: 5, BcryptCost: bcrypt.MinCost},
	}, Options{})
	t.Cleanup(func() { _ = srv.Shutdown() })
	return srv
}

func TestSeedBuildsBrowsableData(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	srv := newTestServer(t)

	require.NoError(t, srv.Seed(ctx, 42))

	creator, _, err := srv.Auth.Login(ctx, "creator1@example.com", SeedPassword)
	require.NoError(t, err)
	require.True(t, creator.IsCreator)

	tiers, err := srv.Users.Tiers(ctx, creator.ID)
	require.NoError(t, err)
	require.Len(t, tiers, 2)

	own, err := srv.Content.ListByCreator(ctx, creator.ID, true)
	require.NoError(t, err)
	require.Len(t, own, 3)

	cats, err := srv.Content.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, len(seedCategories))

	fan, _, err := srv.Auth.Login(ctx, "fan@example.com", SeedPassword)
	require.NoError(t, err)
	require.False(t, fan.IsCreator)
}

func TestSeedTwiceConflicts(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	srv := newTestServer(t)

	require.NoError(t, srv.Seed(ctx, 1))
	require.Error(t, srv.Seed(ctx, 1))
}
