package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/persistence"
	"github.com/spec-kit/creatorhub/internal/testutil"
)

type testEnv struct {
	backend *testutil.Backend
	store   *persistence.MemoryStore
	client  *Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := testutil.NewBackend(t)
	cfg := testutil.Config()
	cfg.API.BaseURL = backend.URL

	store := persistence.NewMemoryStore()
	client, err := New(testutil.Context(t), &cfg, Options{Logger: zap.NewNop(), Store: store})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return &testEnv{backend: backend, store: store, client: client}
}

func TestStartWithoutTokenStaysSignedOut(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.client.Start(testutil.Context(t)))
	require.False(t, env.client.Session.State().Authenticated())
}

func TestStartRestoresPersistedSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	fan := env.backend.CreateAccount(t, false)
	require.NoError(t, env.store.Set(ctx, persistence.KeyToken, fan.Token))

	require.NoError(t, env.client.Start(ctx))

	state := env.client.Session.State()
	require.True(t, state.Authenticated())
	require.Equal(t, fan.User.ID, state.User.ID)
	require.Equal(t, fan.Token, env.client.API.Token())
}

func TestStartDropsRejectedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	require.NoError(t, env.store.Set(ctx, persistence.KeyToken, "not-a-token"))

	require.Error(t, env.client.Start(ctx))

	_, err := env.store.Get(ctx, persistence.KeyToken)
	require.True(t, errors.Is(err, persistence.ErrNotFound))
	require.False(t, env.client.Session.State().Authenticated())
	require.Empty(t, env.client.Session.State().Error)
}

func TestCreatorLoginLoadsOwnContentAndLogoutResets(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{Title: "Studio notes"})

	require.NoError(t, env.client.Session.Login(ctx, creator.Email, creator.Password))
	env.client.Wait()

	own := env.client.Content.State().CreatorContent
	require.Len(t, own, 1)
	require.Equal(t, item.ID, own[0].ID)

	require.NoError(t, env.client.Session.Logout(ctx))
	require.Empty(t, env.client.Content.State().CreatorContent)
	require.Empty(t, env.client.API.Token())
}

func TestFanLoginSkipsCreatorContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	fan := env.backend.CreateAccount(t, false)

	require.NoError(t, env.client.Session.Login(ctx, fan.Email, fan.Password))
	env.client.Wait()

	require.Empty(t, env.client.Content.State().CreatorContent)
	require.Zero(t, env.client.Metrics.Snapshot().Requests[observability.RequestKey("/content/creator", "GET", 200)])
}

func TestSessionChangeAfterCloseStartsNoRefresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	env.backend.CreateContent(t, creator, domain.ContentInput{Title: "Late upload"})

	require.NoError(t, env.client.Close())
	require.NoError(t, env.client.Session.Login(ctx, creator.Email, creator.Password))
	require.NoError(t, env.client.onSessionChanged(ctx, events.Event{Type: events.EventSessionChanged}))
	env.client.Wait()

	state := env.client.Content.State()
	require.Empty(t, state.CreatorContent)
	require.Empty(t, state.Error)
	require.NoError(t, env.client.Close())
}
