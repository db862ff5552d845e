package dto

import "github.com/spec-kit/creatorhub/internal/domain"

// CreateSubscriptionRequest subscribes the caller to a creator tier.
type CreateSubscriptionRequest struct {
	CreatorID string `json:"creatorId"`
	TierID    string `json:"tierId"`
}

// SubscriptionResponse wraps a single subscription.
type SubscriptionResponse struct {
	Subscription domain.Subscription `json:"subscription"`
}

// SubscriptionsResponse lists subscriptions.
type SubscriptionsResponse struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
}

// CheckSubscriptionResponse answers whether the caller is subscribed.
type CheckSubscriptionResponse struct {
	IsSubscribed bool `json:"isSubscribed"`
}
