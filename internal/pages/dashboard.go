package pages

import (
	"context"

	"github.com/spec-kit/creatorhub/internal/domain"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// DashboardPage is the creator's overview: own content, subscribers and
// totals.
type DashboardPage struct {
	deps Deps

	Stats domain.CreatorStats
	Error string
}

// NewDashboardPage builds the creator dashboard.
func NewDashboardPage(deps Deps) *DashboardPage {
	return &DashboardPage{deps: deps}
}

// Load fetches the dashboard. Viewers who are not creators go home.
func (p *DashboardPage) Load(ctx context.Context) (Result, error) {
	if !p.deps.Session.IsCreator() {
		return redirect(PathHome), nil
	}
	if err := p.deps.Content.FetchCreatorContent(ctx); err != nil {
		return Result{}, p.failLoad(err)
	}
	if err := p.deps.Subscriptions.FetchCreatorSubscriptions(ctx); err != nil {
		return Result{}, p.failLoad(err)
	}
	stats, err := p.deps.Directory.CreatorStats(ctx)
	if err != nil {
		return Result{}, p.failLoad(err)
	}
	p.Stats = stats
	p.Error = ""
	return Result{}, nil
}

func (p *DashboardPage) failLoad(err error) error {
	p.Error = apperrors.UserMessage(err, "Failed to load dashboard data")
	return err
}

// Contents returns the creator's own items.
func (p *DashboardPage) Contents() []domain.Content {
	return p.deps.Content.State().CreatorContent
}

// Subscribers returns the subscriptions to the creator's tiers.
func (p *DashboardPage) Subscribers() []domain.Subscription {
	return p.deps.Subscriptions.State().CreatorSubscriptions
}

// Delete removes an item and counts it out of the totals.
func (p *DashboardPage) Delete(ctx context.Context, id string) error {
	if err := p.deps.Content.DeleteContent(ctx, id); err != nil {
		return err
	}
	if p.Stats.TotalContent > 0 {
		p.Stats.TotalContent--
	}
	return nil
}

// NewContent opens the create form.
func (p *DashboardPage) NewContent() Result {
	return redirect(PathCreateContent)
}
