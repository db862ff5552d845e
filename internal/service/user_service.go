package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/repository"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// UserService serves profiles and creator tiers.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID loads a user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("User", nil)
	}
	return user, err
}

// GetByUsername loads a public profile.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("User", nil)
	}
	return user, err
}

// Update applies a partial profile update and returns the stored copy.
func (s *UserService) Update(ctx context.Context, userID string, in domain.UserUpdate) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, apperrors.NewValidationError("Validation failed", map[string]any{"username": "Username is required"})
		}
		user.Username = name
	}
	assign(&user.FullName, in.FullName)
	assign(&user.ProfilePicture, in.ProfilePicture)
	assign(&user.CoverImage, in.CoverImage)
	assign(&user.Bio, in.Bio)
	assign(&user.Country, in.Country)
	assign(&user.Phone, in.Phone)

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Username already taken", map[string]any{"username": "Username already taken"})
		}
		return nil, err
	}
	return user, nil
}

// Tiers lists the tiers a creator offers.
func (s *UserService) Tiers(ctx context.Context, creatorID string) ([]domain.SubscriptionTier, error) {
	user, err := s.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !user.IsCreator || user.CreatorDetails == nil {
		return []domain.SubscriptionTier{}, nil
	}
	return user.CreatorDetails.SubscriptionTiers, nil
}

// AddTier appends a tier to the creator's catalog.
func (s *UserService) AddTier(ctx context.Context, creatorID string, tier domain.SubscriptionTier) (domain.SubscriptionTier, error) {
	if strings.TrimSpace(tier.Name) == "" || tier.Price < 0 {
		return domain.SubscriptionTier{}, apperrors.NewValidationError("Validation failed", map[string]any{"name": "Tier name and a non-negative price are required"})
	}
	user, err := s.GetByID(ctx, creatorID)
	if err != nil {
		return domain.SubscriptionTier{}, err
	}
	if user.CreatorDetails == nil {
		user.CreatorDetails = &domain.CreatorDetails{}
	}
	tier.ID = uuid.NewString()
	if tier.Currency == "" {
		tier.Currency = "USD"
	}
	if tier.Benefits == nil {
		tier.Benefits = []string{}
	}
	user.CreatorDetails.SubscriptionTiers = append(user.CreatorDetails.SubscriptionTiers, tier)
	if err := s.users.Update(ctx, user); err != nil {
		return domain.SubscriptionTier{}, err
	}
	return tier, nil
}

// FindTier returns the tier with tierID offered by creator.
func FindTier(creator *domain.User, tierID string) (domain.SubscriptionTier, bool) {
	if creator == nil || creator.CreatorDetails == nil {
		return domain.SubscriptionTier{}, false
	}
	for _, t := range creator.CreatorDetails.SubscriptionTiers {
		if t.ID == tierID {
			return t, true
		}
	}
	return domain.SubscriptionTier{}, false
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
