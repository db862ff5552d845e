// Package pages holds the view-models behind each screen. A page is driven
// by one goroutine; the managers it reads from are safe to share.
package pages

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/content"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/forms"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/session"
	"github.com/spec-kit/creatorhub/internal/subscription"
)

// ErrInvalidForm is returned by a submit whose form failed validation. The
// page's Errors hold the field messages.
var ErrInvalidForm = errors.New("pages: form has errors")

// Directory reads the records no manager caches.
type Directory interface {
	Profile(ctx context.Context, username string) (*domain.User, error)
	User(ctx context.Context, id string) (*domain.User, error)
	UserContent(ctx context.Context, userID string) ([]domain.Content, error)
	CreatorStats(ctx context.Context) (domain.CreatorStats, error)
}

// Deps is everything a page may use. Nil Events disables Watch.
type Deps struct {
	Session       *session.Manager
	Content       *content.Manager
	Subscriptions *subscription.Manager
	Directory     Directory
	Drafts        *forms.Drafts
	Events        events.Dispatcher
	Logger        *zap.Logger
}

func (d Deps) logger(page string) *zap.Logger {
	return observability.OrNop(d.Logger).Named("pages").With(zap.String("page", page))
}

// Watch calls render after every change of any manager. The returned func
// stops watching.
func (d Deps) Watch(render func(events.Event)) func() {
	if d.Events == nil {
		return func() {}
	}
	handler := func(_ context.Context, ev events.Event) error {
		render(ev)
		return nil
	}
	stops := []func(){
		d.Events.Subscribe(events.EventSessionChanged, handler),
		d.Events.Subscribe(events.EventContentChanged, handler),
		d.Events.Subscribe(events.EventSubscriptionChanged, handler),
	}
	return func() {
		for _, stop := range stops {
			stop()
		}
	}
}

// Result carries the navigation a page asks for. An empty Redirect means
// stay.
type Result struct {
	Redirect string
}

func redirect(path string) Result {
	return Result{Redirect: path}
}

// landing is where a freshly signed-in user goes.
func landing(user *domain.User) Result {
	if user != nil && user.IsCreator {
		return redirect(PathDashboard)
	}
	return redirect(PathExplore)
}
