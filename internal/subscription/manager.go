// Package subscription caches tiers and subscription state for the viewer.
package subscription

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/observability"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// API is the slice of the REST client the subscription cache needs.
type API interface {
	Tiers(ctx context.Context, creatorID string) ([]domain.SubscriptionTier, error)
	CheckSubscription(ctx context.Context, creatorID string) (bool, error)
	Subscribe(ctx context.Context, creatorID, tierID string) (*domain.Subscription, error)
	UserSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	CreatorSubscriptions(ctx context.Context) ([]domain.Subscription, error)
}

// Viewer tells the cache who is signed in.
type Viewer interface {
	CurrentUser() *domain.User
}

// State is a point-in-time copy of the cache.
type State struct {
	// Tiers maps a creator id to the tiers it offers.
	Tiers map[string][]domain.SubscriptionTier
	// Subscribed maps a creator id to the viewer's subscription status.
	Subscribed           map[string]bool
	UserSubscriptions    []domain.Subscription
	CreatorSubscriptions []domain.Subscription
	Loading              bool
	Error                string
}

// Options configures a Manager. Every field is optional.
type Options struct {
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
}

// Manager owns the viewer's subscription state.
type Manager struct {
	api       API
	viewer    Viewer
	logger    *zap.Logger
	publisher events.Publisher

	mu          sync.RWMutex
	tiers       map[string][]domain.SubscriptionTier
	subscribed  map[string]bool
	userSubs    []domain.Subscription
	creatorSubs []domain.Subscription
	inflight    int
	err         string
}

// NewManager builds an empty cache.
func NewManager(api API, viewer Viewer, opts Options) *Manager {
	return &Manager{
		api:         api,
		viewer:      viewer,
		logger:      observability.OrNop(opts.Logger).Named("subscription"),
		publisher:   events.NewPublisher(opts.Dispatcher, events.EventSubscriptionChanged, "subscription"),
		tiers:       map[string][]domain.SubscriptionTier{},
		subscribed:  map[string]bool{},
		userSubs:    []domain.Subscription{},
		creatorSubs: []domain.Subscription{},
	}
}

// FetchTiers loads the tiers creatorID offers.
func (m *Manager) FetchTiers(ctx context.Context, creatorID string) ([]domain.SubscriptionTier, error) {
	m.begin(ctx, "fetch_tiers")
	tiers, err := m.api.Tiers(ctx, creatorID)
	if err != nil {
		m.fail(ctx, "fetch_tiers", err, "Error fetching subscription tiers")
		return nil, err
	}
	if tiers == nil {
		tiers = []domain.SubscriptionTier{}
	}
	m.apply(ctx, "fetch_tiers", func() { m.tiers[creatorID] = slices.Clone(tiers) })
	return tiers, nil
}

// CheckSubscription reports whether the viewer is subscribed to creatorID.
// Signed-out viewers are never subscribed and any failure reads as not
// subscribed.
func (m *Manager) CheckSubscription(ctx context.Context, creatorID string) bool {
	if m.viewer.CurrentUser() == nil {
		return false
	}
	m.begin(ctx, "check_subscription")
	ok, err := m.api.CheckSubscription(ctx, creatorID)
	if err != nil {
		m.logger.Warn("subscription check failed", zap.String("creator_id", creatorID), zap.Error(err))
		ok = false
	}
	m.apply(ctx, "check_subscription", func() { m.subscribed[creatorID] = ok })
	return ok
}

// Subscribe subscribes the viewer to a creator's tier.
func (m *Manager) Subscribe(ctx context.Context, creatorID, tierID string) (*domain.Subscription, error) {
	if m.viewer.CurrentUser() == nil {
		err := apperrors.NewUnauthorized("User must be logged in")
		m.reject(ctx, "subscribe", err)
		return nil, err
	}
	m.begin(ctx, "subscribe")
	sub, err := m.api.Subscribe(ctx, creatorID, tierID)
	if err != nil {
		m.fail(ctx, "subscribe", err, "Error processing subscription")
		return nil, err
	}
	m.apply(ctx, "subscribe", func() {
		m.subscribed[creatorID] = true
		m.userSubs = append([]domain.Subscription{*sub}, m.userSubs...)
	})
	return sub, nil
}

// FetchUserSubscriptions replaces the viewer's subscription list.
func (m *Manager) FetchUserSubscriptions(ctx context.Context) error {
	if m.viewer.CurrentUser() == nil {
		return nil
	}
	m.begin(ctx, "fetch_user_subscriptions")
	subs, err := m.api.UserSubscriptions(ctx)
	if err != nil {
		m.fail(ctx, "fetch_user_subscriptions", err, "Error fetching subscriptions")
		return err
	}
	m.apply(ctx, "fetch_user_subscriptions", func() {
		m.userSubs = nonNil(subs)
		for _, s := range subs {
			if s.IsActive {
				m.subscribed[s.Creator.ID] = true
			}
		}
	})
	return nil
}

// FetchCreatorSubscriptions replaces the list of the viewer's subscribers.
// It does nothing unless the viewer is a creator.
func (m *Manager) FetchCreatorSubscriptions(ctx context.Context) error {
	if u := m.viewer.CurrentUser(); u == nil || !u.IsCreator {
		return nil
	}
	m.begin(ctx, "fetch_creator_subscriptions")
	subs, err := m.api.CreatorSubscriptions(ctx)
	if err != nil {
		m.fail(ctx, "fetch_creator_subscriptions", err, "Error fetching subscribers")
		return err
	}
	m.apply(ctx, "fetch_creator_subscriptions", func() { m.creatorSubs = nonNil(subs) })
	return nil
}

// ClearError drops the last failure message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.err = ""
	m.mu.Unlock()
	m.notify(context.Background(), "clear_error")
}

// ResetViewerData drops everything tied to the previous viewer.
func (m *Manager) ResetViewerData(ctx context.Context) {
	m.mu.Lock()
	m.subscribed = map[string]bool{}
	m.userSubs = []domain.Subscription{}
	m.creatorSubs = []domain.Subscription{}
	m.mu.Unlock()
	m.notify(ctx, "reset")
}

// State returns a copy of the cache.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tiers := make(map[string][]domain.SubscriptionTier, len(m.tiers))
	for k, v := range m.tiers {
		tiers[k] = slices.Clone(v)
	}
	return State{
		Tiers:                tiers,
		Subscribed:           maps.Clone(m.subscribed),
		UserSubscriptions:    slices.Clone(m.userSubs),
		CreatorSubscriptions: slices.Clone(m.creatorSubs),
		Loading:              m.inflight > 0,
		Error:                m.err,
	}
}

// IsSubscribed returns the last known status for creatorID.
func (m *Manager) IsSubscribed(creatorID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subscribed[creatorID]
}

func (m *Manager) begin(ctx context.Context, op string) {
	m.mu.Lock()
	m.inflight++
	m.err = ""
	m.mu.Unlock()
	m.notify(ctx, op+".start")
}

func (m *Manager) apply(ctx context.Context, op string, mutate func()) {
	m.mu.Lock()
	mutate()
	m.inflight--
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) fail(ctx context.Context, op string, err error, fallback string) {
	m.logger.Warn("subscription operation failed", zap.String("operation", op), zap.Error(err))
	m.mu.Lock()
	m.inflight--
	m.err = apperrors.UserMessage(err, fallback)
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) reject(ctx context.Context, op string, err error) {
	m.mu.Lock()
	m.err = apperrors.UserMessage(err, err.Error())
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) notify(ctx context.Context, op string) {
	if err := m.publisher.Notify(ctx, op, nil); err != nil {
		m.logger.Debug("subscription change handler failed", zap.String("operation", op), zap.Error(err))
	}
}

func nonNil(subs []domain.Subscription) []domain.Subscription {
	if subs == nil {
		return []domain.Subscription{}
	}
	return subs
}
