package pages

import (
	"context"

	"github.com/spec-kit/creatorhub/internal/domain"
)

// SubscriptionsPage lists the creators the viewer supports.
type SubscriptionsPage struct {
	deps Deps
}

// NewSubscriptionsPage builds the list of the viewer's subscriptions.
func NewSubscriptionsPage(deps Deps) *SubscriptionsPage {
	return &SubscriptionsPage{deps: deps}
}

// Load fetches the viewer's subscriptions.
func (p *SubscriptionsPage) Load(ctx context.Context) error {
	return p.deps.Subscriptions.FetchUserSubscriptions(ctx)
}

// Subscriptions returns the last fetched list.
func (p *SubscriptionsPage) Subscriptions() []domain.Subscription {
	return p.deps.Subscriptions.State().UserSubscriptions
}

// CreatorName labels a subscription whose creator may not be embedded.
func CreatorName(s domain.Subscription) string {
	if s.Creator.User != nil && s.Creator.User.Username != "" {
		return s.Creator.User.Username
	}
	return "Creator"
}

// TierName labels a subscription whose tier may not be embedded.
func TierName(s domain.Subscription) string {
	if s.Tier.Tier != nil && s.Tier.Tier.Name != "" {
		return s.Tier.Tier.Name
	}
	return "Standard"
}
