package apiclient

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/domain"
)

// Subscribe subscribes the caller to a creator's tier.
func (c *Client) Subscribe(ctx context.Context, creatorID, tierID string) (*domain.Subscription, error) {
	var out dto.SubscriptionResponse
	err := c.do(ctx, call{
		method:   fiber.MethodPost,
		endpoint: "/subscriptions/create",
		path:     "/subscriptions/create",
		body:     dto.CreateSubscriptionRequest{CreatorID: creatorID, TierID: tierID},
		out:      &out,
	})
	if err != nil {
		return nil, err
	}
	return &out.Subscription, nil
}

// CheckSubscription reports whether the caller holds an active
// subscription to creatorID.
func (c *Client) CheckSubscription(ctx context.Context, creatorID string) (bool, error) {
	var out dto.CheckSubscriptionResponse
	err := c.do(ctx, call{
		method:   fiber.MethodGet,
		endpoint: "/subscriptions/check/:creatorId",
		path:     "/subscriptions/check" + pathID(creatorID),
		out:      &out,
	})
	if err != nil {
		return false, err
	}
	return out.IsSubscribed, nil
}

// UserSubscriptions lists the caller's subscriptions.
func (c *Client) UserSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	return c.subscriptions(ctx, "/subscriptions/user")
}

// CreatorSubscriptions lists the subscriptions to the calling creator.
func (c *Client) CreatorSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	return c.subscriptions(ctx, "/subscriptions/creator")
}

func (c *Client) subscriptions(ctx context.Context, path string) ([]domain.Subscription, error) {
	var out dto.SubscriptionsResponse
	if err := c.do(ctx, call{method: fiber.MethodGet, endpoint: path, path: path, out: &out}); err != nil {
		return nil, err
	}
	return out.Subscriptions, nil
}
