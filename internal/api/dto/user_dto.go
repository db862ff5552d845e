package dto

import "github.com/spec-kit/creatorhub/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsCreator bool   `json:"isCreator"`
	FullName  string `json:"fullName,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest sets a new password with a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// StatusResponse is the envelope of calls that only report success.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// TiersResponse lists a creator's tiers.
type TiersResponse struct {
	Tiers []domain.SubscriptionTier `json:"tiers"`
}

// TierRequest creates a tier for the calling creator.
type TierRequest struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Benefits []string `json:"benefits"`
}

// TierResponse wraps a single tier.
type TierResponse struct {
	Tier domain.SubscriptionTier `json:"tier"`
}
