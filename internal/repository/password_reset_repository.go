package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken represents stored reset tokens.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// PasswordResetRepository manages password reset token persistence.
type PasswordResetRepository interface {
	Create(ctx context.Context, token *PasswordResetToken) error
	GetByToken(ctx context.Context, token string) (*PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}

type passwordResetRepository struct {
	mu      sync.Mutex
	byToken map[string]*PasswordResetToken
}

// NewPasswordResetRepository constructs repository.
func NewPasswordResetRepository() PasswordResetRepository {
	return &passwordResetRepository{byToken: make(map[string]*PasswordResetToken)}
}

func (r *passwordResetRepository) Create(_ context.Context, token *PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token.ID = uuid.NewString()
	token.CreatedAt = time.Now().UTC()
	stored := *token
	r.byToken[token.Token] = &stored
	return nil
}

func (r *passwordResetRepository) GetByToken(_ context.Context, tokenStr string) (*PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byToken[tokenStr]
	if !ok {
		return nil, ErrNotFound
	}
	found := *t
	return &found, nil
}

func (r *passwordResetRepository) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.byToken {
		if t.ID == id {
			now := time.Now().UTC()
			t.UsedAt = &now
			return nil
		}
	}
	return ErrNotFound
}
