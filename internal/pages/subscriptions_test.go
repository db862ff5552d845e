package pages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/testutil"
)

func TestSubscriptionsPage(t *testing.T) {
	env := newTestEnv(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	tier := env.backend.CreateTier(t, creator, "Supporter", 4.99)
	env.backend.Subscribe(t, fan, creator, tier.ID)
	env.signIn(t, fan)

	page := NewSubscriptionsPage(env.deps)
	require.NoError(t, page.Load(testutil.Context(t)))

	subs := page.Subscriptions()
	require.Len(t, subs, 1)
	require.Equal(t, creator.User.Username, CreatorName(subs[0]))
}

func TestSubscriptionLabelsFallBack(t *testing.T) {
	sub := domain.Subscription{Creator: domain.RefUser("c1"), Tier: domain.TierRef{ID: "t1"}}
	require.Equal(t, "Creator", CreatorName(sub))
	require.Equal(t, "Standard", TierName(sub))

	sub.Tier = domain.TierRef{ID: "t1", Tier: &domain.SubscriptionTier{ID: "t1", Name: "Insider"}}
	require.Equal(t, "Insider", TierName(sub))
}
