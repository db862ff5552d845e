package pages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/testutil"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

func TestProfileSubscribeFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	tier := env.backend.CreateTier(t, creator, "Supporter", 4.99)
	env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(t, fan)

	page := NewProfilePage(env.deps)
	require.NoError(t, page.Load(ctx, creator.User.Username))
	require.Equal(t, creator.User.ID, page.User.ID)
	require.Len(t, page.Contents, 1)
	require.Len(t, page.Tiers, 1)
	require.False(t, page.Subscribed)
	require.False(t, page.Own())

	require.NoError(t, page.ConfirmSubscription(ctx))
	require.False(t, page.Subscribed)

	require.True(t, apperrors.IsKind(page.SelectTier("missing"), apperrors.KindNotFound))
	require.NoError(t, page.SelectTier(tier.ID))
	require.NoError(t, page.ConfirmSubscription(ctx))
	require.True(t, page.Subscribed)
	require.Nil(t, page.Selected)

	again := NewProfilePage(env.deps)
	require.NoError(t, again.Load(ctx, creator.User.Username))
	require.True(t, again.Subscribed)
}

func TestProfileUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	page := NewProfilePage(env.deps)
	err := page.Load(testutil.Context(t), "nobody-here")
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	require.NotEmpty(t, page.Error)
	require.Nil(t, page.User)
}

func TestProfileOwnFanProfileHasNoTiers(t *testing.T) {
	env := newTestEnv(t)
	fan := env.backend.CreateAccount(t, false)
	env.signIn(t, fan)

	page := NewProfilePage(env.deps)
	require.NoError(t, page.Load(testutil.Context(t), fan.User.Username))
	require.True(t, page.Own())
	require.Empty(t, page.Tiers)
	require.Empty(t, page.Contents)
}
