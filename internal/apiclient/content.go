package apiclient

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/domain"
)

// Trending lists trending content, optionally narrowed to category.
func (c *Client) Trending(ctx context.Context, category string) ([]domain.Content, error) {
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}
	return c.contents(ctx, call{endpoint: "/content/trending", path: "/content/trending", query: query})
}

// CreatorContent lists the calling creator's content, drafts included.
func (c *Client) CreatorContent(ctx context.Context) ([]domain.Content, error) {
	return c.contents(ctx, call{endpoint: "/content/creator", path: "/content/creator"})
}

// UserContent lists a creator's published content.
func (c *Client) UserContent(ctx context.Context, userID string) ([]domain.Content, error) {
	return c.contents(ctx, call{endpoint: "/content/user/:id", path: "/content/user" + pathID(userID)})
}

func (c *Client) contents(ctx context.Context, rc call) ([]domain.Content, error) {
	var out dto.ContentListResponse
	rc.method = fiber.MethodGet
	rc.out = &out
	if err := c.do(ctx, rc); err != nil {
		return nil, err
	}
	return out.Contents, nil
}

// Categories lists discovery categories.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out dto.CategoriesResponse
	err := c.do(ctx, call{method: fiber.MethodGet, endpoint: "/content/categories", path: "/content/categories", out: &out})
	if err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// CreatorStats returns the calling creator's dashboard numbers.
func (c *Client) CreatorStats(ctx context.Context) (domain.CreatorStats, error) {
	var out dto.StatsResponse
	err := c.do(ctx, call{method: fiber.MethodGet, endpoint: "/content/creator/stats", path: "/content/creator/stats", out: &out})
	if err != nil {
		return domain.CreatorStats{}, err
	}
	return out.Stats, nil
}

// Content loads one item. Exclusive items answer 403 without a subscription.
func (c *Client) Content(ctx context.Context, id string) (*domain.Content, error) {
	var out dto.ContentResponse
	err := c.do(ctx, call{method: fiber.MethodGet, endpoint: "/content/:id", path: "/content" + pathID(id), out: &out})
	if err != nil {
		return nil, err
	}
	return out.Content, nil
}

// CreateContent publishes a new item.
func (c *Client) CreateContent(ctx context.Context, in domain.ContentInput) (*domain.Content, error) {
	var out dto.ContentResponse
	err := c.do(ctx, call{method: fiber.MethodPost, endpoint: "/content", path: "/content", body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return out.Content, nil
}

// UpdateContent changes an item and returns the stored copy.
func (c *Client) UpdateContent(ctx context.Context, id string, in domain.ContentInput) (*domain.Content, error) {
	var out dto.ContentResponse
	err := c.do(ctx, call{method: fiber.MethodPut, endpoint: "/content/:id", path: "/content" + pathID(id), body: in, out: &out})
	if err != nil {
		return nil, err
	}
	return out.Content, nil
}

// DeleteContent removes an item.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.do(ctx, call{method: fiber.MethodDelete, endpoint: "/content/:id", path: "/content" + pathID(id), out: &dto.StatusResponse{}})
}

// Like records a like and returns the likes list the server holds.
func (c *Client) Like(ctx context.Context, id string) ([]string, error) {
	return c.likes(ctx, call{method: fiber.MethodPost, endpoint: "/content/:id/like", path: "/content" + pathID(id) + "/like"})
}

// Unlike removes a like and returns the likes list the server holds.
func (c *Client) Unlike(ctx context.Context, id string) ([]string, error) {
	return c.likes(ctx, call{method: fiber.MethodDelete, endpoint: "/content/:id/unlike", path: "/content" + pathID(id) + "/unlike"})
}

func (c *Client) likes(ctx context.Context, rc call) ([]string, error) {
	var out dto.LikeResponse
	rc.out = &out
	if err := c.do(ctx, rc); err != nil {
		return nil, err
	}
	return out.Likes, nil
}

// AddComment posts a comment and returns the stored comment.
func (c *Client) AddComment(ctx context.Context, id, text string) (*domain.Comment, error) {
	var out dto.CommentResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/content/:id/comment",
		path:     "/content" + pathID(id) + "/comment",
		body:     dto.CommentRequest{Text: text},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// Comments lists an item's comments newest first.
func (c *Client) Comments(ctx context.Context, id string) ([]domain.Comment, error) {
	var out dto.CommentsResponse
	err := c.do(ctx, call{method: fiber.MethodGet, endpoint: "/content/:id/comments", path: "/content" + pathID(id) + "/comments", out: &out})
	if err != nil {
		return nil, err
	}
	return out.Comments, nil
}
