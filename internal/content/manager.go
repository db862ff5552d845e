// Package content caches the content lists and the item being viewed.
package content

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/observability"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// API is the slice of the REST client the content cache needs.
type API interface {
	Trending(ctx context.Context, category string) ([]domain.Content, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CreatorContent(ctx context.Context) ([]domain.Content, error)
	Content(ctx context.Context, id string) (*domain.Content, error)
	Comments(ctx context.Context, id string) ([]domain.Comment, error)
	Like(ctx context.Context, id string) ([]string, error)
	Unlike(ctx context.Context, id string) ([]string, error)
	AddComment(ctx context.Context, id, text string) (*domain.Comment, error)
	CreateContent(ctx context.Context, in domain.ContentInput) (*domain.Content, error)
	UpdateContent(ctx context.Context, id string, in domain.ContentInput) (*domain.Content, error)
	DeleteContent(ctx context.Context, id string) error
}

// Viewer tells the cache who is signed in. The session manager satisfies it.
type Viewer interface {
	CurrentUser() *domain.User
}

// State is a point-in-time copy of the cache.
type State struct {
	TrendingContent []domain.Content
	CreatorContent  []domain.Content
	Categories      []domain.Category
	CurrentContent  *domain.Content
	Comments        []domain.Comment
	Loading         bool
	Error           string
}

// Options configures a Manager. Every field is optional.
type Options struct {
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
}

// Manager owns the cached lists. A failed fetch keeps the previous list.
// Likes and comments are applied locally only after the server confirms
// them. Concurrent fetches of one list resolve in completion order.
type Manager struct {
	api       API
	viewer    Viewer
	logger    *zap.Logger
	publisher events.Publisher

	mu       sync.RWMutex
	trending []domain.Content
	creator  []domain.Content
	cats     []domain.Category
	current  *domain.Content
	comments []domain.Comment
	inflight int
	err      string
}

// NewManager builds an empty cache.
func NewManager(api API, viewer Viewer, opts Options) *Manager {
	return &Manager{
		api:       api,
		viewer:    viewer,
		logger:    observability.OrNop(opts.Logger).Named("content"),
		publisher: events.NewPublisher(opts.Dispatcher, events.EventContentChanged, "content"),
		trending:  []domain.Content{},
		creator:   []domain.Content{},
		cats:      []domain.Category{},
		comments:  []domain.Comment{},
	}
}

// FetchTrendingContent replaces the trending list. An empty category
// means all categories.
func (m *Manager) FetchTrendingContent(ctx context.Context, category string) error {
	m.begin(ctx, "fetch_trending")
	items, err := m.api.Trending(ctx, category)
	if err != nil {
		m.fail(ctx, "fetch_trending", err, "Error fetching trending content")
		return err
	}
	m.apply(ctx, "fetch_trending", func() { m.trending = nonNil(items) })
	return nil
}

// FetchCategories replaces the category list.
func (m *Manager) FetchCategories(ctx context.Context) error {
	m.begin(ctx, "fetch_categories")
	cats, err := m.api.Categories(ctx)
	if err != nil {
		m.fail(ctx, "fetch_categories", err, "Error fetching categories")
		return err
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	m.apply(ctx, "fetch_categories", func() { m.cats = cats })
	return nil
}

// FetchCreatorContent replaces the signed-in creator's own list. It does
// nothing for fans and signed-out viewers.
func (m *Manager) FetchCreatorContent(ctx context.Context) error {
	if !isCreator(m.viewer.CurrentUser()) {
		return nil
	}
	m.begin(ctx, "fetch_creator_content")
	items, err := m.api.CreatorContent(ctx)
	if err != nil {
		m.fail(ctx, "fetch_creator_content", err, "Error fetching creator content")
		return err
	}
	m.apply(ctx, "fetch_creator_content", func() { m.creator = nonNil(items) })
	return nil
}

// GetContent loads one item and makes it the current content. Failures are
// returned so the caller can redirect on an authorization error.
func (m *Manager) GetContent(ctx context.Context, id string) (*domain.Content, error) {
	m.begin(ctx, "get_content")
	item, err := m.api.Content(ctx, id)
	if err != nil {
		m.fail(ctx, "get_content", err, "Error fetching content")
		return nil, err
	}
	m.apply(ctx, "get_content", func() { m.current = item.Clone() })
	return item, nil
}

// GetComments loads the comment thread of an item, newest first.
func (m *Manager) GetComments(ctx context.Context, id string) ([]domain.Comment, error) {
	m.begin(ctx, "get_comments")
	comments, err := m.api.Comments(ctx, id)
	if err != nil {
		m.fail(ctx, "get_comments", err, "Error getting comments")
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	m.apply(ctx, "get_comments", func() { m.comments = slices.Clone(comments) })
	return comments, nil
}

// LikeContent likes an item. Once the server confirms, the viewer's id is
// added to the current content's likes if that is the item.
func (m *Manager) LikeContent(ctx context.Context, id string) error {
	user, err := m.requireUser(ctx, "like_content")
	if err != nil {
		return err
	}
	m.begin(ctx, "like_content")
	if _, err := m.api.Like(ctx, id); err != nil {
		m.fail(ctx, "like_content", err, "Error liking content")
		return err
	}
	m.apply(ctx, "like_content", func() {
		if m.current != nil && m.current.ID == id {
			m.current.AddLike(user.ID)
		}
	})
	return nil
}

// UnlikeContent removes the viewer's like once the server confirms.
func (m *Manager) UnlikeContent(ctx context.Context, id string) error {
	user, err := m.requireUser(ctx, "unlike_content")
	if err != nil {
		return err
	}
	m.begin(ctx, "unlike_content")
	if _, err := m.api.Unlike(ctx, id); err != nil {
		m.fail(ctx, "unlike_content", err, "Error unliking content")
		return err
	}
	m.apply(ctx, "unlike_content", func() {
		if m.current != nil && m.current.ID == id {
			m.current.RemoveLike(user.ID)
		}
	})
	return nil
}

// AddComment posts a comment. Blank text is rejected without a request.
// The stored comment is prepended to the thread when id is being viewed.
func (m *Manager) AddComment(ctx context.Context, id, text string) (*domain.Comment, error) {
	if _, err := m.requireUser(ctx, "add_comment"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		err := apperrors.NewValidationError("Comment text cannot be empty", map[string]any{"text": "Comment text cannot be empty"})
		m.reject(ctx, "add_comment", err)
		return nil, err
	}

	m.begin(ctx, "add_comment")
	comment, err := m.api.AddComment(ctx, id, text)
	if err != nil {
		m.fail(ctx, "add_comment", err, "Error adding comment")
		return nil, err
	}
	m.apply(ctx, "add_comment", func() {
		if m.current != nil && m.current.ID == id {
			m.comments = append([]domain.Comment{*comment}, m.comments...)
		}
	})
	return comment, nil
}

// CreateContent publishes a new item and prepends it to the creator list.
func (m *Manager) CreateContent(ctx context.Context, in domain.ContentInput) (*domain.Content, error) {
	if err := m.requireCreator(ctx, "create_content"); err != nil {
		return nil, err
	}
	m.begin(ctx, "create_content")
	item, err := m.api.CreateContent(ctx, in)
	if err != nil {
		m.fail(ctx, "create_content", err, "Error creating content")
		return nil, err
	}
	m.apply(ctx, "create_content", func() {
		m.creator = append([]domain.Content{*item.Clone()}, m.creator...)
	})
	return item, nil
}

// UpdateContent changes an item and swaps the stored copy into the creator
// list and the current content.
func (m *Manager) UpdateContent(ctx context.Context, id string, in domain.ContentInput) (*domain.Content, error) {
	if err := m.requireCreator(ctx, "update_content"); err != nil {
		return nil, err
	}
	m.begin(ctx, "update_content")
	item, err := m.api.UpdateContent(ctx, id, in)
	if err != nil {
		m.fail(ctx, "update_content", err, "Error updating content")
		return nil, err
	}
	m.apply(ctx, "update_content", func() {
		for i := range m.creator {
			if m.creator[i].ID == id {
				m.creator[i] = *item.Clone()
			}
		}
		if m.current != nil && m.current.ID == id {
			m.current = item.Clone()
		}
	})
	return item, nil
}

// DeleteContent removes an item from the server, the creator list and the
// current content.
func (m *Manager) DeleteContent(ctx context.Context, id string) error {
	if err := m.requireCreator(ctx, "delete_content"); err != nil {
		return err
	}
	m.begin(ctx, "delete_content")
	if err := m.api.DeleteContent(ctx, id); err != nil {
		m.fail(ctx, "delete_content", err, "Error deleting content")
		return err
	}
	m.apply(ctx, "delete_content", func() {
		m.creator = slices.DeleteFunc(m.creator, func(c domain.Content) bool { return c.ID == id })
		if m.current != nil && m.current.ID == id {
			m.current = nil
		}
	})
	return nil
}

// ClearError drops the last failure message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.err = ""
	m.mu.Unlock()
	m.notify(context.Background(), "clear_error")
}

// ResetViewerData drops what belongs to the previous viewer: the creator
// list, the current content and its comments.
func (m *Manager) ResetViewerData(ctx context.Context) {
	m.mu.Lock()
	m.creator = []domain.Content{}
	m.current = nil
	m.comments = []domain.Comment{}
	m.mu.Unlock()
	m.notify(ctx, "reset")
}

// State returns a copy of the cache.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		TrendingContent: cloneContents(m.trending),
		CreatorContent:  cloneContents(m.creator),
		Categories:      slices.Clone(m.cats),
		CurrentContent:  m.current.Clone(),
		Comments:        slices.Clone(m.comments),
		Loading:         m.inflight > 0,
		Error:           m.err,
	}
}

func (m *Manager) requireUser(ctx context.Context, op string) (*domain.User, error) {
	user := m.viewer.CurrentUser()
	if user == nil {
		err := apperrors.NewUnauthorized("User must be logged in")
		m.reject(ctx, op, err)
		return nil, err
	}
	return user, nil
}

func (m *Manager) requireCreator(ctx context.Context, op string) error {
	if isCreator(m.viewer.CurrentUser()) {
		return nil
	}
	err := apperrors.NewForbidden("User must be a creator")
	m.reject(ctx, op, err)
	return err
}

func (m *Manager) begin(ctx context.Context, op string) {
	m.mu.Lock()
	m.inflight++
	m.err = ""
	m.mu.Unlock()
	m.notify(ctx, op+".start")
}

// apply ends a successful call, mutating state under the lock.
func (m *Manager) apply(ctx context.Context, op string, mutate func()) {
	m.mu.Lock()
	mutate()
	m.inflight--
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) fail(ctx context.Context, op string, err error, fallback string) {
	m.logger.Warn("content operation failed", zap.String("operation", op), zap.Error(err))
	m.mu.Lock()
	m.inflight--
	m.err = apperrors.UserMessage(err, fallback)
	m.mu.Unlock()
	m.notify(ctx, op)
}

// reject records a failure detected before any request was made.
func (m *Manager) reject(ctx context.Context, op string, err error) {
	m.mu.Lock()
	m.err = apperrors.UserMessage(err, err.Error())
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) notify(ctx context.Context, op string) {
	if err := m.publisher.Notify(ctx, op, nil); err != nil {
		m.logger.Debug("content change handler failed", zap.String("operation", op), zap.Error(err))
	}
}

func isCreator(u *domain.User) bool {
	return u != nil && u.IsCreator
}

func nonNil(items []domain.Content) []domain.Content {
	if items == nil {
		return []domain.Content{}
	}
	return items
}

func cloneContents(items []domain.Content) []domain.Content {
	out := make([]domain.Content, len(items))
	for i := range items {
		out[i] = *items[i].Clone()
	}
	return out
}
