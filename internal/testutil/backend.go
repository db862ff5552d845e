// Package testutil runs the dev backend on a loopback port for tests.
package testutil

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/devserver"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/service"
)

// Config returns settings tuned for fast tests.
func Config() config.Config {
	return config.Config{
		App:    config.AppConfig{Name: "creatorhub-test", Env: "test", Version: "test"},
		API:    config.APIConfig{TimeoutSeconds: 5, UserAgent: "creatorhub-test"},
		Store:  config.StoreConfig{Driver: config.StoreDriverMemory},
		Logger: config.LoggerConfig{Level: "error"},
		DevServer: config.DevServerConfig{
			Host:      "127.0.0.1",
			EmailFrom: "noreply@example.com",
		},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              bcrypt.MinCost,
		},
	}
}

// Context returns a context bounded like a single test step.
func Context(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Backend is a running dev server.
type Backend struct {
	URL    string
	Server *devserver.Server
	Resets *ResetRecorder
}

// Account is a registered user together with its credentials.
type Account struct {
	User     *domain.User
	Token    string
	Email    string
	Password string
}

// NewBackend starts a fresh backend that stops when t ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	resets := &ResetRecorder{tokens: map[string]string{}}
	srv := devserver.New(Config(), devserver.Options{Notifier: resets})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	return &Backend{
		URL:    fmt.Sprintf("http://%s/api", ln.Addr().String()),
		Server: srv,
		Resets: resets,
	}
}

// CreateAccount registers a random fan or creator directly on the server.
func (b *Backend) CreateAccount(t *testing.T, creator bool) Account {
	t.Helper()
	password := gofakeit.Password(true, true, true, false, false, 10)
	email := gofakeit.Email()
	user, token, err := b.Server.Auth.Register(context.Background(), registerInput(email, password, creator))
	require.NoError(t, err)
	return Account{User: user, Token: token, Email: email, Password: password}
}

func registerInput(email, password string, creator bool) service.RegisterInput {
	return service.RegisterInput{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(1000, 999999)),
		Email:     email,
		Password:  password,
		IsCreator: creator,
		FullName:  gofakeit.Name(),
	}
}

// CreateTier adds a tier to creator's catalog.
func (b *Backend) CreateTier(t *testing.T, creator Account, name string, price float64) domain.SubscriptionTier {
	t.Helper()
	tier, err := b.Server.Users.AddTier(context.Background(), creator.User.ID, domain.SubscriptionTier{Name: name, Price: price})
	require.NoError(t, err)
	return tier
}

// CreateContent publishes an item authored by creator.
func (b *Backend) CreateContent(t *testing.T, creator Account, in domain.ContentInput) *domain.Content {
	t.Helper()
	if in.Title == "" {
		in.Title = gofakeit.Sentence(3)
	}
	if in.ContentType == "" {
		in.ContentType = domain.ContentTypeText
	}
	c, err := b.Server.Content.Create(context.Background(), creator.User, in)
	require.NoError(t, err)
	return c
}

// Subscribe subscribes fan to creator's tier.
func (b *Backend) Subscribe(t *testing.T, fan, creator Account, tierID string) *domain.Subscription {
	t.Helper()
	sub, err := b.Server.Subscriptions.Create(context.Background(), fan.User, creator.User.ID, tierID)
	require.NoError(t, err)
	return sub
}

// ResetRecorder captures password-reset tokens instead of mailing them.
type ResetRecorder struct {
	mu     sync.Mutex
	tokens map[string]string
}

// SendPasswordReset records token for email.
func (r *ResetRecorder) SendPasswordReset(_ context.Context, email, token string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[email] = token
}

// Token returns the last reset token sent to email.
func (r *ResetRecorder) Token(email string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[email]
	return token, ok
}
