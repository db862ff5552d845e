package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/apiclient"
	"github.com/spec-kit/creatorhub/internal/content"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/forms"
	"github.com/spec-kit/creatorhub/internal/persistence"
	"github.com/spec-kit/creatorhub/internal/session"
	"github.com/spec-kit/creatorhub/internal/subscription"
	"github.com/spec-kit/creatorhub/internal/testutil"
)

type testEnv struct {
	backend *testutil.Backend
	store   *persistence.MemoryStore
	deps    Deps
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := testutil.NewBackend(t)
	client := apiclient.New(apiclient.Config{BaseURL: backend.URL, Timeout: 5 * time.Second}, nil, nil)
	store := persistence.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()

	sess := session.NewManager(client, store, session.Options{Dispatcher: dispatcher})
	return &testEnv{
		backend: backend,
		store:   store,
		deps: Deps{
			Session:       sess,
			Content:       content.NewManager(client, sess, content.Options{Dispatcher: dispatcher}),
			Subscriptions: subscription.NewManager(client, sess, subscription.Options{Dispatcher: dispatcher}),
			Directory:     client,
			Drafts:        forms.NewDrafts(store),
			Events:        dispatcher,
		},
	}
}

func (e *testEnv) signIn(t *testing.T, account testutil.Account) {
	t.Helper()
	require.NoError(t, e.deps.Session.Login(testutil.Context(t), account.Email, account.Password))
}

func TestMatch(t *testing.T) {
	route, params := Match("/profile/ada?tab=content")
	require.Equal(t, "profile", route.Name)
	require.Equal(t, map[string]string{"username": "ada"}, params)

	route, params = Match("/content/42/")
	require.Equal(t, "content", route.Name)
	require.Equal(t, "42", params["contentId"])

	route, _ = Match("/")
	require.Equal(t, "home", route.Name)

	route, _ = Match("/explore")
	require.Equal(t, NotFound, route)

	route, _ = Match("/profile/")
	require.Equal(t, NotFound, route)
}

func TestRouteGuards(t *testing.T) {
	fan := &domain.User{ID: "u1"}
	creator := &domain.User{ID: "u2", IsCreator: true}
	dashboard, _ := Match(PathDashboard)
	subs, _ := Match(PathSubscriptions)
	home, _ := Match(PathHome)

	res, ok := subs.Authorize(session.State{})
	require.False(t, ok)
	require.Equal(t, PathLogin, res.Redirect)

	res, ok = subs.Authorize(session.State{Loading: true})
	require.False(t, ok)
	require.Empty(t, res.Redirect)

	_, ok = subs.Authorize(session.State{User: fan, Token: "t"})
	require.True(t, ok)

	res, ok = dashboard.Authorize(session.State{User: fan, Token: "t"})
	require.False(t, ok)
	require.Equal(t, PathHome, res.Redirect)

	_, ok = dashboard.Authorize(session.State{User: creator, Token: "t"})
	require.True(t, ok)

	_, ok = home.Authorize(session.State{Loading: true})
	require.True(t, ok)
}

func TestWatchSeesManagerChanges(t *testing.T) {
	env := newTestEnv(t)
	var seen []events.EventType
	stop := env.deps.Watch(func(ev events.Event) { seen = append(seen, ev.Type) })

	env.deps.Content.ClearError()
	env.deps.Subscriptions.ClearError()
	env.deps.Session.ClearError()
	stop()
	env.deps.Content.ClearError()

	require.Equal(t, []events.EventType{
		events.EventContentChanged,
		events.EventSubscriptionChanged,
		events.EventSessionChanged,
	}, seen)
}

func TestHomeLoadsFeedAndFilters(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	env.backend.CreateContent(t, creator, domain.ContentInput{Category: "Music"})
	env.backend.CreateContent(t, creator, domain.ContentInput{Category: "Art"})

	home := NewHomePage(env.deps)
	require.NoError(t, home.Load(ctx))
	require.Len(t, home.Trending(), 2)
	require.Len(t, home.Categories(), 2)
	require.Empty(t, home.Error)

	require.NoError(t, home.SelectCategory(ctx, "Art"))
	require.Len(t, home.Trending(), 1)
	require.Equal(t, "Art", home.Trending()[0].Category)

	require.NoError(t, home.SelectCategory(ctx, AllCategories))
	require.Len(t, home.Trending(), 2)
}
