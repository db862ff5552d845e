package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/creatorhub/internal/auth"
	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/repository"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// PasswordResetNotifier delivers reset links.
type PasswordResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time)
}

// AuthService coordinates registration, login and password recovery.
type AuthService struct {
	users      repository.UserRepository
	resets     repository.PasswordResetRepository
	notifier   PasswordResetNotifier
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Notifier          PasswordResetNotifier
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	IsCreator bool
	FullName  string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		resets:     deps.PasswordResetRepo,
		notifier:   deps.Notifier,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	fields := map[string]any{}
	if strings.TrimSpace(in.Username) == "" {
		fields["username"] = "Username is required"
	}
	if !domain.ValidEmail(in.Email) {
		fields["email"] = "Please include a valid email"
	}
	if len(in.Password) < auth.MinPasswordLength {
		fields["password"] = "Please enter a password with 6 or more characters"
	}
	if len(fields) > 0 {
		return nil, "", apperrors.NewValidationError("Validation failed", fields)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FullName:     strings.TrimSpace(in.FullName),
		IsCreator:    in.IsCreator,
		PasswordHash: hash,
	}
	if in.IsCreator {
		user.CreatorDetails = &domain.CreatorDetails{Categories: []string{}, SubscriptionTiers: []domain.SubscriptionTier{}}
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperrors.NewConflict("User already exists", nil)
		}
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// Login authenticates an account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("Invalid email or password")
	}
	token, _, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return user, token, nil
}

// RequestPasswordReset issues a reset token. Unknown emails get the same
// answer as known ones.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if !domain.ValidEmail(email) {
		return apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "Email is invalid"})
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.SendPasswordReset(ctx, user.Email, token.Token, token.ExpiresAt)
	}
	return nil
}

// ResetPassword validates the reset token and updates password.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < auth.MinPasswordLength {
		return apperrors.NewValidationError("Password too short", map[string]any{"password": "Password must be at least 6 characters"})
	}

	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewValidationError("Invalid or expired reset token", nil)
		}
		return err
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("Invalid or expired reset token", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
