package pages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/testutil"
)

func TestDashboardSendsFansHome(t *testing.T) {
	env := newTestEnv(t)
	fan := env.backend.CreateAccount(t, false)
	env.signIn(t, fan)

	res, err := NewDashboardPage(env.deps).Load(testutil.Context(t))
	require.NoError(t, err)
	require.Equal(t, PathHome, res.Redirect)
}

func TestDashboardLoadAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	tier := env.backend.CreateTier(t, creator, "Supporter", 5)
	env.backend.Subscribe(t, fan, creator, tier.ID)
	first := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(t, creator)

	page := NewDashboardPage(env.deps)
	res, err := page.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, res.Redirect)
	require.Equal(t, 2, page.Stats.TotalContent)
	require.Equal(t, 1, page.Stats.TotalSubscribers)
	require.Len(t, page.Contents(), 2)
	require.Len(t, page.Subscribers(), 1)

	require.NoError(t, page.Delete(ctx, first.ID))
	require.Equal(t, 1, page.Stats.TotalContent)
	require.Len(t, page.Contents(), 1)
	require.Equal(t, PathCreateContent, page.NewContent().Redirect)
}
