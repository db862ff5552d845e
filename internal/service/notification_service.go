package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/config"
)

// NotificationService stands in for the mailer of the real backend; it
// logs what it would send.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.DevServerConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.DevServerConfig) *NotificationService {
	return &NotificationService{logger: logger, cfg: cfg}
}

// SendPasswordReset logs the reset link for email.
func (n *NotificationService) SendPasswordReset(_ context.Context, email, token string, expiresAt time.Time) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Info("sendPasswordResetStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", email),
		zap.String("reset_path", "/auth/resetPassword/"+token),
		zap.Time("expires_at", expiresAt))
}
