package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/repository"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

const trendingLimit = 20

// ContentService coordinates content workflows.
type ContentService struct {
	contents      repository.ContentRepository
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	now           func() time.Time
}

// ContentDependencies bundles repositories for content service.
type ContentDependencies struct {
	ContentRepo      repository.ContentRepository
	UserRepo         repository.UserRepository
	SubscriptionRepo repository.SubscriptionRepository
}

// NewContentService constructs the service.
func NewContentService(deps ContentDependencies) *ContentService {
	return &ContentService{
		contents:      deps.ContentRepo,
		users:         deps.UserRepo,
		subscriptions: deps.SubscriptionRepo,
		now:           time.Now,
	}
}

// Trending ranks published content by likes and views.
func (s *ContentService) Trending(ctx context.Context, category string) ([]domain.Content, error) {
	items, err := s.contents.List(ctx, repository.ContentFilter{Category: category, Status: domain.ContentStatusPublished})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return trendScore(items[i]) > trendScore(items[j])
	})
	if len(items) > trendingLimit {
		items = items[:trendingLimit]
	}
	return items, nil
}

func trendScore(c domain.Content) int {
	return 2*len(c.Likes) + c.Views
}

// Categories lists the distinct categories of published content.
func (s *ContentService) Categories(ctx context.Context) ([]domain.Category, error) {
	items, err := s.contents.List(ctx, repository.ContentFilter{Status: domain.ContentStatusPublished})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]domain.Category, 0)
	for _, c := range items {
		if c.Category == "" || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, domain.Category{ID: slug(c.Category), Name: c.Category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Get loads one item for viewer and counts the view. Drafts are visible to
// their owner only; exclusive items need an active subscription.
func (s *ContentService) Get(ctx context.Context, id string, viewer *domain.User) (*domain.Content, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	owner := viewer != nil && viewer.ID == c.Creator.ID
	if c.Status != domain.ContentStatusPublished && !owner {
		return nil, apperrors.NewNotFound("Content", nil)
	}
	if c.IsExclusive && !owner {
		if viewer == nil {
			return nil, apperrors.NewForbidden("Subscription required to access this content")
		}
		if _, err := s.subscriptions.FindActive(ctx, viewer.ID, c.Creator.ID, s.now()); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewForbidden("Subscription required to access this content")
			}
			return nil, err
		}
	}
	if err := s.contents.IncrementViews(ctx, id); err != nil {
		return nil, err
	}
	c.Views++
	return c, nil
}

// ListByCreator returns a creator's items; drafts only when includeDrafts.
func (s *ContentService) ListByCreator(ctx context.Context, creatorID string, includeDrafts bool) ([]domain.Content, error) {
	filter := repository.ContentFilter{CreatorID: creatorID}
	if !includeDrafts {
		filter.Status = domain.ContentStatusPublished
	}
	return s.contents.List(ctx, filter)
}

// Create stores a new item authored by creator.
func (s *ContentService) Create(ctx context.Context, creator *domain.User, in domain.ContentInput) (*domain.Content, error) {
	fields := map[string]any{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "Title is required"
	}
	if !in.ContentType.Valid() {
		fields["contentType"] = "Content type must be one of image, video, audio, text, live"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("Validation failed", fields)
	}

	c := &domain.Content{Creator: domain.RefUser(creator.ID), Status: domain.ContentStatusPublished}
	applyContentInput(c, in)
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes an item owned by creator.
func (s *ContentService) Update(ctx context.Context, creator *domain.User, id string, in domain.ContentInput) (*domain.Content, error) {
	c, err := s.owned(ctx, creator, id)
	if err != nil {
		return nil, err
	}
	if in.ContentType != "" && !in.ContentType.Valid() {
		return nil, apperrors.NewValidationError("Validation failed", map[string]any{"contentType": "Content type must be one of image, video, audio, text, live"})
	}
	applyContentInput(c, in)
	if err := s.contents.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes an item owned by creator.
func (s *ContentService) Delete(ctx context.Context, creator *domain.User, id string) error {
	if _, err := s.owned(ctx, creator, id); err != nil {
		return err
	}
	return s.contents.Delete(ctx, id)
}

// Like records user's like; liking twice keeps one entry.
func (s *ContentService) Like(ctx context.Context, user *domain.User, id string) ([]string, error) {
	likes, err := s.contents.AddLike(ctx, id, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("Content", nil)
	}
	return likes, err
}

// Unlike removes user's like.
func (s *ContentService) Unlike(ctx context.Context, user *domain.User, id string) ([]string, error) {
	likes, err := s.contents.RemoveLike(ctx, id, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("Content", nil)
	}
	return likes, err
}

// Comment appends a comment by user.
func (s *ContentService) Comment(ctx context.Context, user *domain.User, id, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Comment text is required", map[string]any{"text": "Comment text is required"})
	}
	author := &domain.User{ID: user.ID, Username: user.Username, FullName: user.FullName, ProfilePicture: user.ProfilePicture}
	comment := &domain.Comment{User: domain.RefUserDoc(author), Text: text}
	if err := s.contents.AddComment(ctx, id, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Content", nil)
		}
		return nil, err
	}
	return comment, nil
}

// Comments lists an item's comments newest first.
func (s *ContentService) Comments(ctx context.Context, id string) ([]domain.Comment, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Comments, nil
}

// Stats summarizes a creator's content and subscribers.
func (s *ContentService) Stats(ctx context.Context, creatorID string) (domain.CreatorStats, error) {
	items, err := s.contents.List(ctx, repository.ContentFilter{CreatorID: creatorID})
	if err != nil {
		return domain.CreatorStats{}, err
	}
	subs, err := s.subscriptions.ListByCreator(ctx, creatorID)
	if err != nil {
		return domain.CreatorStats{}, err
	}

	var stats domain.CreatorStats
	stats.TotalContent = len(items)
	for _, c := range items {
		stats.TotalViews += c.Views
		stats.TotalLikes += len(c.Likes)
	}
	now := s.now()
	for _, sub := range subs {
		stats.TotalRevenue += sub.Price
		if sub.ActiveAt(now) {
			stats.TotalSubscribers++
		}
	}
	return stats, nil
}

func (s *ContentService) load(ctx context.Context, id string) (*domain.Content, error) {
	c, err := s.contents.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("Content", nil)
	}
	return c, err
}

func (s *ContentService) owned(ctx context.Context, creator *domain.User, id string) (*domain.Content, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Creator.ID != creator.ID {
		return nil, apperrors.NewForbidden("Not authorized to modify this content")
	}
	return c, nil
}

func applyContentInput(c *domain.Content, in domain.ContentInput) {
	if t := strings.TrimSpace(in.Title); t != "" {
		c.Title = t
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.Category != "" {
		c.Category = in.Category
	}
	if in.ContentType != "" {
		c.ContentType = in.ContentType
	}
	if in.MediaURL != "" {
		c.MediaURL = in.MediaURL
	}
	if in.ThumbnailURL != "" {
		c.ThumbnailURL = in.ThumbnailURL
	}
	if in.Tags != nil {
		c.Tags = in.Tags
	}
	if in.IsExclusive != nil {
		c.IsExclusive = *in.IsExclusive
	}
	if in.RequiredTier != "" {
		c.RequiredTier = in.RequiredTier
	}
	if in.IsPaidContent != nil {
		c.IsPaidContent = *in.IsPaidContent
	}
	if in.Price != nil {
		c.Price = *in.Price
	}
	if in.Currency != "" {
		c.Currency = in.Currency
	}
	if in.Status != "" {
		c.Status = in.Status
	}
}
