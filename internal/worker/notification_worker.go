package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/service"
)

const defaultQueueSize = 64

type resetJob struct {
	email     string
	token     string
	expiresAt time.Time
}

// NotificationWorker hands password-reset notifications to a background
// goroutine so request handlers never wait on delivery.
type NotificationWorker struct {
	target service.PasswordResetNotifier
	logger *zap.Logger
	queue  chan resetJob

	once sync.Once
	wg   sync.WaitGroup
}

// NewNotificationWorker wraps target. Call Start before enqueuing.
func NewNotificationWorker(target service.PasswordResetNotifier, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		target: target,
		logger: logger,
		queue:  make(chan resetJob, defaultQueueSize),
	}
}

// Start drains the queue until ctx is done or Stop is called.
func (w *NotificationWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-w.queue:
				if !ok {
					return
				}
				w.target.SendPasswordReset(ctx, job.email, job.token, job.expiresAt)
			}
		}
	}()
}

// SendPasswordReset enqueues a notification. A full queue drops it.
func (w *NotificationWorker) SendPasswordReset(_ context.Context, email, token string, expiresAt time.Time) {
	select {
	case w.queue <- resetJob{email: email, token: token, expiresAt: expiresAt}:
	default:
		w.logger.Warn("notification queue full, dropping password reset", zap.String("to", email))
	}
}

// Stop closes the queue and waits for queued notifications to be delivered.
func (w *NotificationWorker) Stop() {
	w.once.Do(func() { close(w.queue) })
	w.wg.Wait()
}
