package repository

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/creatorhub/internal/domain"
)

// ContentFilter narrows content listings.
type ContentFilter struct {
	CreatorID string
	Category  string
	Status    domain.ContentStatus
	Limit     int
}

// ContentRepository encapsulates content persistence, including likes and
// comments which live inside the content document.
type ContentRepository interface {
	Create(ctx context.Context, content *domain.Content) error
	Update(ctx context.Context, content *domain.Content) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Content, error)
	List(ctx context.Context, filter ContentFilter) ([]domain.Content, error)
	IncrementViews(ctx context.Context, id string) error
	AddLike(ctx context.Context, id, userID string) ([]string, error)
	RemoveLike(ctx context.Context, id, userID string) ([]string, error)
	AddComment(ctx context.Context, id string, comment *domain.Comment) error
}

type contentRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Content
}

// NewContentRepository returns an in-memory implementation.
func NewContentRepository() ContentRepository {
	return &contentRepository{byID: make(map[string]*domain.Content)}
}

func (r *contentRepository) Create(_ context.Context, content *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	content.ID = uuid.NewString()
	content.CreatedAt = now
	content.UpdatedAt = now
	if content.Likes == nil {
		content.Likes = []string{}
	}
	if content.Comments == nil {
		content.Comments = []domain.Comment{}
	}
	if content.Tags == nil {
		content.Tags = []string{}
	}
	r.byID[content.ID] = content.Clone()
	return nil
}

func (r *contentRepository) Update(_ context.Context, content *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[content.ID]; !ok {
		return ErrNotFound
	}
	content.UpdatedAt = time.Now().UTC()
	r.byID[content.ID] = content.Clone()
	return nil
}

func (r *contentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *contentRepository) GetByID(_ context.Context, id string) (*domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c.Clone(), nil
}

// List returns matches newest first.
func (r *contentRepository) List(_ context.Context, filter ContentFilter) ([]domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]domain.Content, 0)
	for _, c := range r.byID {
		if filter.CreatorID != "" && c.Creator.ID != filter.CreatorID {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		items = append(items, *c.Clone())
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (r *contentRepository) IncrementViews(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.Views++
	return nil
}

func (r *contentRepository) AddLike(_ context.Context, id, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.AddLike(userID)
	return slices.Clone(c.Likes), nil
}

func (r *contentRepository) RemoveLike(_ context.Context, id, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.RemoveLike(userID)
	return slices.Clone(c.Likes), nil
}

// AddComment assigns id and timestamp and stores the comment first.
func (r *contentRepository) AddComment(_ context.Context, id string, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	c.Comments = append([]domain.Comment{*comment}, c.Comments...)
	return nil
}
