package apiclient

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/domain"
)

// Me returns the account the current token belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	return c.user(ctx, "/users/me", "/users/me")
}

// Profile looks a user up by username.
func (c *Client) Profile(ctx context.Context, username string) (*domain.User, error) {
	return c.user(ctx, "/users/profile/:username", "/users/profile"+pathID(username))
}

// User looks a user up by id.
func (c *Client) User(ctx context.Context, id string) (*domain.User, error) {
	return c.user(ctx, "/users/:id", "/users"+pathID(id))
}

func (c *Client) user(ctx context.Context, endpoint, path string) (*domain.User, error) {
	var out dto.UserResponse
	if err := c.do(ctx, call{method: fiber.MethodGet, endpoint: endpoint, path: path, out: &out}); err != nil {
		return nil, err
	}
	return out.User, nil
}

// UpdateUser sends a partial profile update and returns the stored account.
func (c *Client) UpdateUser(ctx context.Context, update domain.UserUpdate) (*domain.User, error) {
	var out dto.UserResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPut,
		endpoint: "/users/update",
		path:     "/users/update",
		body:     update,
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

// Tiers lists the subscription tiers a creator offers.
func (c *Client) Tiers(ctx context.Context, creatorID string) ([]domain.SubscriptionTier, error) {
	var out dto.TiersResponse
	err := c.do(ctx, call{
		method:   fiber.MethodGet,
		endpoint: "/users/:id/subscription-tiers",
		path:     "/users" + pathID(creatorID) + "/subscription-tiers",
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return out.Tiers, nil
}

// AddTier adds a tier to the calling creator's catalog.
func (c *Client) AddTier(ctx context.Context, req dto.TierRequest) (domain.SubscriptionTier, error) {
	var out dto.TierResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/users/subscription-tiers",
		path:     "/users/subscription-tiers",
		body:     req,
		out:      &out,
	})
	if err != nil {
		return domain.SubscriptionTier{}, err
	}
	return out.Tier, nil
}
