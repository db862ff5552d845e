package pages

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
)

// AllCategories is the filter value that shows every category.
const AllCategories = "all"

// HomePage shows the category filter and the trending feed.
type HomePage struct {
	deps   Deps
	logger *zap.Logger

	Category string
	Error    string
}

// NewHomePage builds the landing feed.
func NewHomePage(deps Deps) *HomePage {
	return &HomePage{deps: deps, logger: deps.logger("home"), Category: AllCategories}
}

// Load fetches categories and the trending feed at the same time. Only a
// failed feed is reported; missing categories just hide the filter.
func (p *HomePage) Load(ctx context.Context) error {
	var (
		wg         sync.WaitGroup
		catErr     error
		trendErr   error
		category   = p.filter()
		contentMgr = p.deps.Content
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catErr = contentMgr.FetchCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		trendErr = contentMgr.FetchTrendingContent(ctx, category)
	}()
	wg.Wait()

	if catErr != nil {
		p.logger.Warn("categories unavailable", zap.Error(catErr))
	}
	return p.settle(trendErr)
}

// SelectCategory filters the feed and reloads it.
func (p *HomePage) SelectCategory(ctx context.Context, category string) error {
	if category == "" {
		category = AllCategories
	}
	p.Category = category
	return p.settle(p.deps.Content.FetchTrendingContent(ctx, p.filter()))
}

// Trending returns the feed for the selected category.
func (p *HomePage) Trending() []domain.Content {
	return p.deps.Content.State().TrendingContent
}

// Categories returns the filter choices.
func (p *HomePage) Categories() []domain.Category {
	return p.deps.Content.State().Categories
}

// Loading reports whether a content fetch is in flight.
func (p *HomePage) Loading() bool {
	return p.deps.Content.State().Loading
}

func (p *HomePage) filter() string {
	if p.Category == AllCategories {
		return ""
	}
	return p.Category
}

func (p *HomePage) settle(err error) error {
	if err != nil {
		p.Error = "Unable to load content. Please try again later."
		return err
	}
	p.Error = ""
	return nil
}
