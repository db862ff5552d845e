package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/repository"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// SubscriptionService manages fan-to-creator subscriptions.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	now           func() time.Time
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptions: subs, users: users, now: time.Now}
}

// Create subscribes subscriber to a creator's tier for one month.
func (s *SubscriptionService) Create(ctx context.Context, subscriber *domain.User, creatorID, tierID string) (*domain.Subscription, error) {
	if creatorID == "" || tierID == "" {
		return nil, apperrors.NewValidationError("creatorId and tierId are required", nil)
	}
	if creatorID == subscriber.ID {
		return nil, apperrors.NewValidationError("You cannot subscribe to yourself", nil)
	}
	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Creator", nil)
		}
		return nil, err
	}
	if !creator.IsCreator {
		return nil, apperrors.NewValidationError("User is not a creator", nil)
	}
	tier, ok := FindTier(creator, tierID)
	if !ok {
		return nil, apperrors.NewNotFound("Subscription tier", nil)
	}

	start := s.now().UTC()
	sub := &domain.Subscription{
		Subscriber: domain.RefUser(subscriber.ID),
		Creator:    domain.RefUser(creator.ID),
		Tier:       domain.TierRef{ID: tier.ID, Tier: &tier},
		StartDate:  start,
		EndDate:    start.AddDate(0, 1, 0),
		IsActive:   true,
		AutoRenew:  true,
		Price:      tier.Price,
		Currency:   tier.Currency,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Already subscribed to this creator", nil)
		}
		return nil, err
	}
	return sub, nil
}

// IsSubscribed reports whether subscriberID holds an active subscription to creatorID.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID, creatorID string) (bool, error) {
	_, err := s.subscriptions.FindActive(ctx, subscriberID, creatorID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ForSubscriber lists a fan's subscriptions with creators embedded.
func (s *SubscriptionService) ForSubscriber(ctx context.Context, subscriberID string) ([]domain.Subscription, error) {
	subs, err := s.subscriptions.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if u, err := s.users.GetByID(ctx, subs[i].Creator.ID); err == nil {
			subs[i].Creator = domain.RefUserDoc(u)
		}
	}
	return subs, nil
}

// ForCreator lists a creator's subscribers with subscribers embedded.
func (s *SubscriptionService) ForCreator(ctx context.Context, creatorID string) ([]domain.Subscription, error) {
	subs, err := s.subscriptions.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if u, err := s.users.GetByID(ctx, subs[i].Subscriber.ID); err == nil {
			subs[i].Subscriber = domain.RefUserDoc(u)
		}
	}
	return subs, nil
}
