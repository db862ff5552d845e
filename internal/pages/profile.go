package pages

import (
	"context"

	"github.com/spec-kit/creatorhub/internal/domain"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// ProfilePage shows a user, their content and, for creators, the tiers
// a viewer can subscribe to.
type ProfilePage struct {
	deps Deps

	User       *domain.User
	Contents   []domain.Content
	Tiers      []domain.SubscriptionTier
	Subscribed bool
	Selected   *domain.SubscriptionTier
	Error      string
}

// NewProfilePage builds the public profile page.
func NewProfilePage(deps Deps) *ProfilePage {
	return &ProfilePage{deps: deps}
}

// Load fetches the profile by username.
func (p *ProfilePage) Load(ctx context.Context, username string) error {
	user, err := p.deps.Directory.Profile(ctx, username)
	if err != nil {
		return p.failLoad(err)
	}
	contents, err := p.deps.Directory.UserContent(ctx, user.ID)
	if err != nil {
		return p.failLoad(err)
	}

	p.User = user
	p.Contents = contents
	p.Tiers = nil
	p.Subscribed = false
	if user.IsCreator {
		tiers, err := p.deps.Subscriptions.FetchTiers(ctx, user.ID)
		if err != nil {
			return p.failLoad(err)
		}
		p.Tiers = tiers
		p.Subscribed = p.deps.Subscriptions.CheckSubscription(ctx, user.ID)
	}
	p.Error = ""
	return nil
}

func (p *ProfilePage) failLoad(err error) error {
	p.Error = apperrors.UserMessage(err, "Failed to load profile")
	return err
}

// Own reports whether the viewer is looking at their own profile.
func (p *ProfilePage) Own() bool {
	viewer := p.deps.Session.CurrentUser()
	return viewer != nil && p.User != nil && viewer.ID == p.User.ID
}

// SelectTier opens the confirmation for one of the loaded tiers.
func (p *ProfilePage) SelectTier(tierID string) error {
	for i := range p.Tiers {
		if p.Tiers[i].ID == tierID {
			tier := p.Tiers[i]
			p.Selected = &tier
			return nil
		}
	}
	return apperrors.NewNotFound("Subscription tier", nil)
}

// CancelSubscription closes the confirmation.
func (p *ProfilePage) CancelSubscription() {
	p.Selected = nil
}

// ConfirmSubscription subscribes to the selected tier. Nothing happens
// without a selection.
func (p *ProfilePage) ConfirmSubscription(ctx context.Context) error {
	if p.Selected == nil || p.User == nil {
		return nil
	}
	if _, err := p.deps.Subscriptions.Subscribe(ctx, p.User.ID, p.Selected.ID); err != nil {
		return err
	}
	p.Subscribed = true
	p.Selected = nil
	return nil
}
