package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/creatorhub/internal/domain"
)

// SubscriptionRepository stores subscriber/creator links.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	FindActive(ctx context.Context, subscriberID, creatorID string, at time.Time) (*domain.Subscription, error)
	ListBySubscriber(ctx context.Context, subscriberID string) ([]domain.Subscription, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Subscription, error)
}

type subscriptionRepository struct {
	mu   sync.RWMutex
	subs []domain.Subscription
}

// NewSubscriptionRepository returns an in-memory implementation.
func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{}
}

// Create rejects a second active subscription for the same pair.
func (r *subscriptionRepository) Create(_ context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.Subscriber.ID == sub.Subscriber.ID && s.Creator.ID == sub.Creator.ID && s.ActiveAt(sub.StartDate) {
			return ErrDuplicate
		}
	}
	sub.ID = uuid.NewString()
	r.subs = append(r.subs, *sub)
	return nil
}

func (r *subscriptionRepository) FindActive(_ context.Context, subscriberID, creatorID string, at time.Time) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.subs {
		if s.Subscriber.ID == subscriberID && s.Creator.ID == creatorID && s.ActiveAt(at) {
			found := s
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *subscriptionRepository) ListBySubscriber(_ context.Context, subscriberID string) ([]domain.Subscription, error) {
	return r.list(func(s domain.Subscription) bool { return s.Subscriber.ID == subscriberID }), nil
}

func (r *subscriptionRepository) ListByCreator(_ context.Context, creatorID string) ([]domain.Subscription, error) {
	return r.list(func(s domain.Subscription) bool { return s.Creator.ID == creatorID }), nil
}

// list returns matches, most recent start first.
func (r *subscriptionRepository) list(match func(domain.Subscription) bool) []domain.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Subscription, 0)
	for _, s := range r.subs {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}
