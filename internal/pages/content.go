package pages

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/forms"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// ContentPage shows one item with its creator, likes and comments.
type ContentPage struct {
	deps   Deps
	logger *zap.Logger

	// CreatorHint is the username of the item's creator when the linking
	// page knows it. A locked item redirects to that profile.
	CreatorHint string

	Creator     *domain.User
	Subscribed  bool
	CommentText string
	Error       string
}

// NewContentPage builds the single item page.
func NewContentPage(deps Deps) *ContentPage {
	return &ContentPage{deps: deps, logger: deps.logger("content")}
}

// Load fetches the item, its creator, the viewer's subscription and the
// comments. An item behind a subscription redirects to the creator's
// profile, or home when the creator is unknown.
func (p *ContentPage) Load(ctx context.Context, id string) (Result, error) {
	item, err := p.deps.Content.GetContent(ctx, id)
	if err != nil {
		p.Error = apperrors.UserMessage(err, "Failed to load content")
		if apperrors.IsKind(err, apperrors.KindAuthorization) {
			return redirect(p.lockedRedirect()), err
		}
		return Result{}, err
	}

	creator := item.Creator.User
	if creator == nil {
		creator, err = p.deps.Directory.User(ctx, item.Creator.ID)
		if err != nil {
			p.Error = apperrors.UserMessage(err, "Failed to load content")
			return Result{}, err
		}
	}
	p.Creator = creator
	p.Subscribed = p.deps.Subscriptions.CheckSubscription(ctx, creator.ID)

	if _, err := p.deps.Content.GetComments(ctx, id); err != nil {
		p.Error = apperrors.UserMessage(err, "Failed to load content")
		return Result{}, err
	}
	p.Error = ""
	return Result{}, nil
}

func (p *ContentPage) lockedRedirect() string {
	switch {
	case p.Creator != nil && p.Creator.Username != "":
		return ProfilePath(p.Creator.Username)
	case p.CreatorHint != "":
		return ProfilePath(p.CreatorHint)
	}
	return PathHome
}

// Content returns the item shown, or nil before Load succeeds.
func (p *ContentPage) Content() *domain.Content {
	return p.deps.Content.State().CurrentContent
}

// Comments returns the thread of the item shown.
func (p *ContentPage) Comments() []domain.Comment {
	return p.deps.Content.State().Comments
}

// Liked reports whether the viewer likes the item shown.
func (p *ContentPage) Liked() bool {
	item := p.Content()
	user := p.deps.Session.CurrentUser()
	return item != nil && user != nil && item.LikedBy(user.ID)
}

// LikeCount returns how many users like the item shown.
func (p *ContentPage) LikeCount() int {
	if item := p.Content(); item != nil {
		return len(item.Likes)
	}
	return 0
}

// ToggleLike likes or unlikes the item shown. Signed-out viewers are sent
// to the login page.
func (p *ContentPage) ToggleLike(ctx context.Context) (Result, error) {
	if p.deps.Session.CurrentUser() == nil {
		return redirect(PathLogin), nil
	}
	item := p.Content()
	if item == nil {
		return Result{}, nil
	}
	var err error
	if p.Liked() {
		err = p.deps.Content.UnlikeContent(ctx, item.ID)
	} else {
		err = p.deps.Content.LikeContent(ctx, item.ID)
	}
	if err != nil {
		p.logger.Warn("like toggle failed", zap.String("content_id", item.ID), zap.Error(err))
	}
	return Result{}, err
}

// PostComment sends CommentText. Blank text and signed-out viewers are
// ignored.
func (p *ContentPage) PostComment(ctx context.Context) error {
	item := p.Content()
	if item == nil || strings.TrimSpace(p.CommentText) == "" || p.deps.Session.CurrentUser() == nil {
		return nil
	}
	if _, err := p.deps.Content.AddComment(ctx, item.ID, p.CommentText); err != nil {
		p.logger.Warn("comment failed", zap.String("content_id", item.ID), zap.Error(err))
		return err
	}
	p.CommentText = ""
	return nil
}

// CreateContentPage publishes a new item.
type CreateContentPage struct {
	deps Deps

	Form   forms.ContentForm
	Errors forms.Errors
}

// NewCreateContentPage builds the creator upload form.
func NewCreateContentPage(deps Deps) *CreateContentPage {
	return &CreateContentPage{deps: deps, Errors: forms.Errors{}}
}

// Submit validates the form and creates the item, then opens it.
func (p *CreateContentPage) Submit(ctx context.Context) (Result, error) {
	p.Errors = p.Form.Validate()
	if !p.Errors.Valid() {
		return Result{}, ErrInvalidForm
	}
	item, err := p.deps.Content.CreateContent(ctx, p.Form.Input())
	if err != nil {
		if fields := apperrors.FieldErrors(err); len(fields) > 0 {
			p.Errors = forms.Errors(fields)
		} else {
			p.Errors = forms.Errors{forms.FieldGeneral: apperrors.UserMessage(err, "Error creating content")}
		}
		return Result{}, err
	}
	return redirect(ContentPath(item.ID)), nil
}
