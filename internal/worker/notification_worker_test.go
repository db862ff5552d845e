package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	emails []string
}

func (r *recordingNotifier) SendPasswordReset(_ context.Context, email, _ string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, email)
}

func TestWorkerDeliversQueuedNotifications(t *testing.T) {
	target := &recordingNotifier{}
	w := NewNotificationWorker(target, nil)
	w.Start(context.Background())

	first, second := gofakeit.Email(), gofakeit.Email()
	w.SendPasswordReset(context.Background(), first, "t1", time.Now())
	w.SendPasswordReset(context.Background(), second, "t2", time.Now())
	w.Stop()

	require.Equal(t, []string{first, second}, target.emails)
}

func TestStopIsIdempotent(t *testing.T) {
	w := NewNotificationWorker(&recordingNotifier{}, nil)
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
