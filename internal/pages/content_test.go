package pages

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/forms"
	"github.com/spec-kit/creatorhub/internal/testutil"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

func TestContentPageLoadsEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{Title: "Open post"})
	env.signIn(t, fan)

	page := NewContentPage(env.deps)
	res, err := page.Load(ctx, item.ID)
	require.NoError(t, err)
	require.Empty(t, res.Redirect)
	require.Equal(t, creator.User.Username, page.Creator.Username)
	require.False(t, page.Subscribed)
	require.Equal(t, item.ID, page.Content().ID)
	require.Empty(t, page.Comments())
	require.Empty(t, page.Error)
}

func TestContentPageLockedItemRedirectsToCreator(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	exclusive := true
	item := env.backend.CreateContent(t, creator, domain.ContentInput{IsExclusive: &exclusive})
	env.signIn(t, fan)

	page := NewContentPage(env.deps)
	page.CreatorHint = creator.User.Username
	res, err := page.Load(ctx, item.ID)
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.Equal(t, ProfilePath(creator.User.Username), res.Redirect)
	require.Equal(t, "Subscription required to access this content", page.Error)

	unknown := NewContentPage(env.deps)
	res, err = unknown.Load(ctx, item.ID)
	require.Error(t, err)
	require.Equal(t, PathHome, res.Redirect)
}

func TestContentPageSubscriberSeesLockedItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	tier := env.backend.CreateTier(t, creator, "Insider", 9.99)
	env.backend.Subscribe(t, fan, creator, tier.ID)
	exclusive := true
	item := env.backend.CreateContent(t, creator, domain.ContentInput{IsExclusive: &exclusive})
	env.signIn(t, fan)

	page := NewContentPage(env.deps)
	_, err := page.Load(ctx, item.ID)
	require.NoError(t, err)
	require.True(t, page.Subscribed)
}

func TestContentPageLikeAndComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	fan := env.backend.CreateAccount(t, false)
	item := env.backend.CreateContent(t, creator, domain.ContentInput{})
	env.signIn(t, fan)

	page := NewContentPage(env.deps)
	_, err := page.Load(ctx, item.ID)
	require.NoError(t, err)

	_, err = page.ToggleLike(ctx)
	require.NoError(t, err)
	require.True(t, page.Liked())
	require.Equal(t, 1, page.LikeCount())

	_, err = page.ToggleLike(ctx)
	require.NoError(t, err)
	require.False(t, page.Liked())
	require.Zero(t, page.LikeCount())

	page.CommentText = "   "
	require.NoError(t, page.PostComment(ctx))
	require.Empty(t, page.Comments())

	page.CommentText = "Lovely work"
	require.NoError(t, page.PostComment(ctx))
	require.Empty(t, page.CommentText)
	require.Len(t, page.Comments(), 1)
	require.Equal(t, "Lovely work", page.Comments()[0].Text)
}

func TestContentPageLikeNeedsSession(t *testing.T) {
	env := newTestEnv(t)

	res, err := NewContentPage(env.deps).ToggleLike(testutil.Context(t))
	require.NoError(t, err)
	require.Equal(t, PathLogin, res.Redirect)
}

func TestCreateContentPage(t *testing.T) {
	env := newTestEnv(t)
	ctx := testutil.Context(t)
	creator := env.backend.CreateAccount(t, true)
	env.signIn(t, creator)

	page := NewCreateContentPage(env.deps)
	_, err := page.Submit(ctx)
	require.ErrorIs(t, err, ErrInvalidForm)
	require.Equal(t, "Title is required", page.Errors["title"])

	page.Form = forms.ContentForm{Title: "Sketchbook", Description: "Pages from May", Category: "Art"}
	res, err := page.Submit(ctx)
	require.NoError(t, err)

	own := env.deps.Content.State().CreatorContent
	require.Len(t, own, 1)
	require.Equal(t, ContentPath(own[0].ID), res.Redirect)
}

func TestCreateContentPageRejectsFans(t *testing.T) {
	env := newTestEnv(t)
	fan := env.backend.CreateAccount(t, false)
	env.signIn(t, fan)

	page := NewCreateContentPage(env.deps)
	page.Form = forms.ContentForm{Title: "Nope", Description: "Nope", Category: "Art"}
	_, err := page.Submit(testutil.Context(t))
	require.True(t, apperrors.IsKind(err, apperrors.KindAuthorization))
	require.Equal(t, "User must be a creator", page.Errors[forms.FieldGeneral])
}
