package content

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/apiclient"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/testutil"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

type staticViewer struct {
	user *domain.User
}

func (v *staticViewer) CurrentUser() *domain.User {
	return v.user.Clone()
}

type testEnv struct {
	backend *testutil.Backend
	client  *apiclient.Client
	metrics *observability.Metrics
	viewer  *staticViewer
	manager *Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := testutil.NewBackend(t)
	metrics := observability.NewMetrics()
	client := apiclient.New(apiclient.Config{BaseURL: backend.URL, Timeout: 5 * time.Second}, nil, metrics)
	viewer := &staticViewer{}
	return &testEnv{
		backend: backend,
		client:  client,
		metrics: metrics,
		viewer:  viewer,
		manager: NewManager(client, viewer, Options{}),
	}
}

func (e *testEnv) signIn(account testutil.Account) {
	e.viewer.user = account.User
	e.client.SetToken(account.Token)
}

func (e *testEnv) requestCount() int64 {
	var total int64
	for _, n := range e.metrics.Snapshot().Requests {
		total += n
	}
	return total
}

// failingTrending fails trending fetches for one category.
type failingTrending struct {
	API
	category string
}

func (f failingTrending) Trending(ctx context.Context, category string) ([]domain.Content, error) {
	if category == f.category {
		return nil, apperrors.NewNetworkError(errors.New("connection reset"))
	}
	return f.API.Trending(ctx, category)
}

func TestFailedTrendingFetchKeepsPreviousList(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	env.backend.CreateContent(t, creator, domain.ContentInput{Category: "music"})
	env.backend.CreateContent(t, creator, domain.ContentInput{Category: "music"})
	m := NewManager(failingTrending{API: env.client, category: "sports"}, env.viewer, Options{})

	require.NoError(t, m.FetchTrendingContent(ctx, "music"))
	want, err := env.client.Trending(ctx, "music")
	require.NoError(t, err)
	require.Len(t, want, 2)
	require.Equal(t, want, m.State().TrendingContent)
	require.Empty(t, m.State().Error)

	err = m.FetchTrendingContent(ctx, "sports")

	require.True(t, apperrors.IsKind(err, apperrors.KindNetwork))
	state := m.State()
	require.Equal(t, want, state.TrendingContent)
	require.Equal(t, "Error fetching trending content", state.Error)
	require.False(t, state.Loading)
}

// gatedTrending holds trending fetches until release is closed. Categories
// answer immediately.
type gatedTrending struct {
	API
	started chan struct{}
	release chan struct{}
}

func (g gatedTrending) Trending(ctx context.Context, _ string) ([]domain.Content, error) {
	close(g.started)
	select {
	case <-g.release:
		return []domain.Content{{ID: "c1", Title: "Held"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g gatedTrending) Categories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{ID: "art", Name: "Art"}}, nil
}

func TestLoadingCoversOverlappingFetches(t *testing.T) {
	ctx := testutil.Context(t)
	api := gatedTrending{started: make(chan struct{}), release: make(chan struct{})}
	m := NewManager(api, &staticViewer{}, Options{})

	var (
		wg          sync.WaitGroup
		trendingErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		trendingErr = m.FetchTrendingContent(ctx, "")
	}()
	<-api.started

	require.NoError(t, m.FetchCategories(ctx))
	state := m.State()
	require.Len(t, state.Categories, 1)
	require.True(t, state.Loading)

	close(api.release)
	wg.Wait()
	require.NoError(t, trendingErr)

	state = m.State()
	require.False(t, state.Loading)
	require.Len(t, state.TrendingContent, 1)
}

func TestFetchCategories(t *testing.T) {
	env := newTestEnv(t)
	creator := env.backend.CreateAccount(t, true)
	env.backend.CreateContent(t, creator, domain.ContentInput{Category: "Art"})

	require.NoError(t, env.manager.FetchCategories(testutil.Context(t)))

	require.Equal(t, []domain.Category{{ID: "art", Name: "Art"}}, env.manager.State().Categories)
}

func TestBlankCommentIsRejectedWithoutRequest(t *testing.T) {
	env := newTestEnv(t)
	fan := env.backend.CreateAccount(t, false)
	env.signIn(fan)

	_, err := env.manager.AddComment(testutil.Context(t), "any-id", " \t\n ")

	require.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	require.Equal(t, "Comment text cannot be empty", env.manager.State().Error)
	require.Zero(t, env.requestCount())
}

func TestFanCannotCreateContent(t *testing.T) {
	env := newTestEnv(t)
	fan := env.backend.CreateAccount(t, false)
	env.signIn(fan)
	ctx := testutil.Context(t)

	_, err := env.manager.CreateContent(ctx, domain.ContentInput{Title: "Hello", ContentType: domain.ContentTypeText})
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.Equal(t, "User must be a creator", env.manager.State().Error)

	_, err = env.manager.UpdateContent(ctx, "x", domain.ContentInput{Title: "Hello"})
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.True(t, apperrors.IsKind(env.manager.DeleteContent(ctx, "x"), apperrors.KindAuthorization))

	require.Zero(t, env.requestCount())
}

func TestSignedOutViewerCannotLike(t *testing.T) {
	env := newTestEnv(t)

	err := env.manager.LikeContent(testutil.Context(t), "any-id")

	require.True(t, apperrors.IsKind(err, apperrors.KindAuthentication))
	require.Zero(t, env.requestCount())
}

func TestLikeThenUnlikeRestoresLikes(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	other := env.backend.CreateAccount(t, false)
	fan := env.backend.CreateAccount(t, false)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	_, err := env.backend.Server.Content.Like(ctx, other.User, item.ID)
	require.NoError(t, err)
	env.signIn(fan)

	_, err = env.manager.GetContent(ctx, item.ID)
	require.NoError(t, err)
	original := env.manager.State().CurrentContent.Likes
	require.Equal(t, []string{other.User.ID}, original)

	require.NoError(t, env.manager.LikeContent(ctx, item.ID))
	require.ElementsMatch(t, []string{other.User.ID, fan.User.ID}, env.manager.State().CurrentContent.Likes)

	require.NoError(t, env.manager.LikeContent(ctx, item.ID))
	require.Len(t, env.manager.State().CurrentContent.Likes, 2)

	require.NoError(t, env.manager.UnlikeContent(ctx, item.ID))
	require.Equal(t, original, env.manager.State().CurrentContent.Likes)
}

func TestRejectedLikeLeavesLikesUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(fan)
	_, err := env.manager.GetContent(ctx, item.ID)
	require.NoError(t, err)
	require.NoError(t, env.backend.Server.Content.Delete(ctx, creator.User, item.ID))

	err = env.manager.LikeContent(ctx, item.ID)

	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	require.Empty(t, env.manager.State().CurrentContent.Likes)
	require.NotEmpty(t, env.manager.State().Error)
}

func TestAddCommentPrependsStoredComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	_, err := env.backend.Server.Content.Comment(ctx, creator.User, item.ID, "first!")
	require.NoError(t, err)
	env.signIn(fan)

	_, err = env.manager.GetContent(ctx, item.ID)
	require.NoError(t, err)
	_, err = env.manager.GetComments(ctx, item.ID)
	require.NoError(t, err)

	text := gofakeit.Sentence(5)
	comment, err := env.manager.AddComment(ctx, item.ID, text)
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)
	require.False(t, comment.CreatedAt.IsZero())

	comments := env.manager.State().Comments
	require.Len(t, comments, 2)
	require.Equal(t, comment.ID, comments[0].ID)
	require.Equal(t, fan.User.ID, comments[0].User.ID)
	require.Equal(t, "first!", comments[1].Text)
}

func TestCommentOnOtherItemLeavesThreadAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	viewed := env.backend.CreateContent(t, creator, domain.ContentInput{})
	other := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(creator)
	_, err := env.manager.GetContent(ctx, viewed.ID)
	require.NoError(t, err)

	_, err = env.manager.AddComment(ctx, other.ID, "elsewhere")
	require.NoError(t, err)

	require.Empty(t, env.manager.State().Comments)
}

func TestCreatorMutationsReconcileLists(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	existing := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(creator)

	require.NoError(t, env.manager.FetchCreatorContent(ctx))
	require.Len(t, env.manager.State().CreatorContent, 1)

	created, err := env.manager.CreateContent(ctx, domain.ContentInput{Title: "New drop", ContentType: domain.ContentTypeAudio})
	require.NoError(t, err)
	list := env.manager.State().CreatorContent
	require.Len(t, list, 2)
	require.Equal(t, created.ID, list[0].ID)
	require.Equal(t, existing.ID, list[1].ID)

	_, err = env.manager.GetContent(ctx, created.ID)
	require.NoError(t, err)
	updated, err := env.manager.UpdateContent(ctx, created.ID, domain.ContentInput{Title: "New drop (remastered)"})
	require.NoError(t, err)
	state := env.manager.State()
	require.Equal(t, updated.Title, state.CreatorContent[0].Title)
	require.Equal(t, updated.Title, state.CurrentContent.Title)

	require.NoError(t, env.manager.DeleteContent(ctx, created.ID))
	state = env.manager.State()
	require.Len(t, state.CreatorContent, 1)
	require.Equal(t, existing.ID, state.CreatorContent[0].ID)
	require.Nil(t, state.CurrentContent)
}

func TestFetchCreatorContentSkipsFans(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(env.backend.CreateAccount(t, false))

	require.NoError(t, env.manager.FetchCreatorContent(testutil.Context(t)))
	require.Zero(t, env.requestCount())
}

func TestGetContentReturnsAuthorizationError(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	exclusive := true
	item := env.backend.CreateContent(t, creator, domain.ContentInput{IsExclusive: &exclusive})
	env.signIn(env.backend.CreateAccount(t, false))

	_, err := env.manager.GetContent(ctx, item.ID)

	require.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.Equal(t, "Subscription required to access this content", env.manager.State().Error)
	require.Nil(t, env.manager.State().CurrentContent)
}

func TestStateIsACopy(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(creator)
	_, err := env.manager.GetContent(ctx, item.ID)
	require.NoError(t, err)

	state := env.manager.State()
	state.CurrentContent.Likes = append(state.CurrentContent.Likes, "intruder")

	require.Empty(t, env.manager.State().CurrentContent.Likes)
}

func TestResetViewerData(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(creator)
	require.NoError(t, env.manager.FetchCreatorContent(ctx))
	_, err := env.manager.GetContent(ctx, item.ID)
	require.NoError(t, err)

	env.manager.ResetViewerData(ctx)

	state := env.manager.State()
	require.Empty(t, state.CreatorContent)
	require.Nil(t, state.CurrentContent)
	require.False(t, state.Loading)
}
