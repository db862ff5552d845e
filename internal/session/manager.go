// Package session holds the signed-in identity and its bearer token.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/auth"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/persistence"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// ErrLoggedOut reports a sign-in that completed after Logout and was dropped.
var ErrLoggedOut = errors.New("session: logged out before sign-in completed")

// API is the slice of the REST client the session needs.
type API interface {
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
	UpdateUser(ctx context.Context, update domain.UserUpdate) (*domain.User, error)
	ForgotPassword(ctx context.Context, email string) (*dto.StatusResponse, error)
	ResetPassword(ctx context.Context, token, password string) (*dto.StatusResponse, error)
	SetToken(token string)
	ClearToken()
}

// State is a point-in-time copy of the session.
type State struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Loading   bool
	Error     string
}

// Authenticated reports whether both token and user are present.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Options configures a Manager. Every field is optional.
type Options struct {
	Logger     *zap.Logger
	Dispatcher events.Dispatcher
}

// Manager owns the session. Token and user are always set or cleared
// together; Loading is true while any call it issued is in flight.
type Manager struct {
	api       API
	store     persistence.Store
	logger    *zap.Logger
	publisher events.Publisher

	// authMu orders token persistence against Logout.
	authMu sync.Mutex

	mu        sync.RWMutex
	gen       uint64 // bumped by Logout
	user      *domain.User
	token     string
	expiresAt time.Time
	inflight  int
	err       string
}

// NewManager builds an empty session. Call Restore to pick up a persisted
// token.
func NewManager(api API, store persistence.Store, opts Options) *Manager {
	return &Manager{
		api:       api,
		store:     store,
		logger:    observability.OrNop(opts.Logger).Named("session"),
		publisher: events.NewPublisher(opts.Dispatcher, events.EventSessionChanged, "session"),
	}
}

// Restore loads the persisted token and verifies it with exactly one
// "who am I" call. A failed call discards the token.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Get(ctx, persistence.KeyToken)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	gen := m.begin(ctx, "restore")
	m.api.SetToken(token)
	user, err := m.api.Me(ctx)
	if err != nil {
		m.logger.Info("persisted token rejected", zap.Error(err))
		m.api.ClearToken()
		if delErr := m.store.Delete(ctx, persistence.KeyToken); delErr != nil {
			m.logger.Warn("failed to drop persisted token", zap.Error(delErr))
		}
		m.mu.Lock()
		m.clearLocked()
		m.inflight--
		m.mu.Unlock()
		m.notify(ctx, "restore")
		return err
	}

	m.authMu.Lock()
	m.mu.Lock()
	if m.gen != gen {
		if m.token == "" {
			m.api.ClearToken()
		}
		m.inflight--
		m.mu.Unlock()
		m.authMu.Unlock()
		m.notify(ctx, "restore")
		return ErrLoggedOut
	}
	m.setLocked(token, user)
	m.inflight--
	m.mu.Unlock()
	m.authMu.Unlock()
	m.notify(ctx, "restore")
	return nil
}

// Login signs in with email and password. A Logout issued while the call
// is in flight wins and Login returns ErrLoggedOut.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	gen := m.begin(ctx, "login")
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.fail(ctx, "login", err, "Login failed")
		return err
	}
	return m.establish(ctx, "login", gen, resp, "Login failed")
}

// Register creates an account and signs it in. Missing fields and a
// malformed email fail before any request is made.
func (m *Manager) Register(ctx context.Context, username, email, password string, isCreator bool, fullName string) error {
	if err := validateRegistration(username, email, password); err != nil {
		m.reject(ctx, "register", err)
		return err
	}

	gen := m.begin(ctx, "register")
	resp, err := m.api.Register(ctx, dto.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  password,
		IsCreator: isCreator,
		FullName:  fullName,
	})
	if err != nil {
		m.fail(ctx, "register", err, "Registration failed")
		return err
	}
	return m.establish(ctx, "register", gen, resp, "Registration failed")
}

func validateRegistration(username, email, password string) error {
	fields := map[string]any{}
	if strings.TrimSpace(username) == "" {
		fields["username"] = "Username is required"
	}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "Email is required"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("Please fill in all required fields", fields)
	}
	if !domain.ValidEmail(email) {
		return apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "Email is invalid"})
	}
	return nil
}

// Logout clears the persisted token, the in-memory session and the
// default auth header. It is safe to call when signed out. The in-memory
// session is cleared even when the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.authMu.Lock()
	err := m.store.Delete(ctx, persistence.KeyToken)
	if err != nil {
		m.logger.Warn("failed to drop persisted token", zap.Error(err))
	}
	m.api.ClearToken()

	m.mu.Lock()
	m.gen++
	m.clearLocked()
	m.mu.Unlock()
	m.authMu.Unlock()
	m.notify(ctx, "logout")
	return err
}

// UpdateUser sends a partial profile update and replaces the cached user
// with the copy the server returns.
func (m *Manager) UpdateUser(ctx context.Context, update domain.UserUpdate) error {
	if !m.State().Authenticated() {
		err := apperrors.NewUnauthorized("User must be logged in")
		m.reject(ctx, "update_user", err)
		return err
	}

	m.begin(ctx, "update_user")
	user, err := m.api.UpdateUser(ctx, update)
	if err != nil {
		m.failAuthenticated(ctx, "update_user", err, "Update failed")
		return err
	}
	m.replaceUser(ctx, "update_user", user)
	return nil
}

// RefetchUser re-reads the account from the server. It is a no-op when
// signed out.
func (m *Manager) RefetchUser(ctx context.Context) error {
	if !m.State().Authenticated() {
		return nil
	}

	m.begin(ctx, "refetch_user")
	user, err := m.api.Me(ctx)
	if err != nil {
		m.failAuthenticated(ctx, "refetch_user", err, "Error loading user")
		return err
	}
	m.replaceUser(ctx, "refetch_user", user)
	return nil
}

// ForgotPassword asks the backend to mail a reset link and returns the
// confirmation message.
func (m *Manager) ForgotPassword(ctx context.Context, email string) (string, error) {
	if !domain.ValidEmail(email) {
		err := apperrors.NewValidationError("Please enter a valid email address", map[string]any{"email": "Email is invalid"})
		m.reject(ctx, "forgot_password", err)
		return "", err
	}

	m.begin(ctx, "forgot_password")
	resp, err := m.api.ForgotPassword(ctx, email)
	if err != nil {
		m.fail(ctx, "forgot_password", err, "Failed to send reset email. Please try again.")
		return "", err
	}
	m.end(ctx, "forgot_password")
	return resp.Message, nil
}

// ResetPassword sets a new password with a mailed reset token. The
// session is left as it is.
func (m *Manager) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < auth.MinPasswordLength {
		err := apperrors.NewValidationError("Password must be at least 6 characters", map[string]any{"password": "Password must be at least 6 characters"})
		m.reject(ctx, "reset_password", err)
		return err
	}

	m.begin(ctx, "reset_password")
	if _, err := m.api.ResetPassword(ctx, token, password); err != nil {
		m.fail(ctx, "reset_password", err, "Failed to reset password")
		return err
	}
	m.end(ctx, "reset_password")
	return nil
}

// ClearError drops the last failure message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	m.err = ""
	m.mu.Unlock()
	m.notify(context.Background(), "clear_error")
}

// State returns a copy of the session.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		User:      m.user.Clone(),
		Token:     m.token,
		ExpiresAt: m.expiresAt,
		Loading:   m.inflight > 0,
		Error:     m.err,
	}
}

// CurrentUser returns a copy of the signed-in user, nil when signed out.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Clone()
}

// IsCreator reports whether the signed-in user owns a creator account.
func (m *Manager) IsCreator() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil && m.user.IsCreator
}

func (m *Manager) persist(ctx context.Context, token string) error {
	if err := m.store.Set(ctx, persistence.KeyToken, token); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// establish persists the token and then sets the session, unless Logout
// ran since gen was taken.
func (m *Manager) establish(ctx context.Context, op string, gen uint64, resp *dto.AuthResponse, fallback string) error {
	m.authMu.Lock()
	if m.generation() != gen {
		m.authMu.Unlock()
		m.logger.Info("sign-in dropped after logout", zap.String("operation", op))
		m.end(ctx, op)
		return ErrLoggedOut
	}
	if err := m.persist(ctx, resp.Token); err != nil {
		m.authMu.Unlock()
		m.fail(ctx, op, err, fallback)
		return err
	}
	m.api.SetToken(resp.Token)
	m.mu.Lock()
	m.setLocked(resp.Token, resp.User)
	m.inflight--
	m.mu.Unlock()
	m.authMu.Unlock()
	m.notify(ctx, op)
	return nil
}

func (m *Manager) generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gen
}

func (m *Manager) replaceUser(ctx context.Context, op string, user *domain.User) {
	m.mu.Lock()
	if m.token != "" {
		m.user = user.Clone()
	}
	m.inflight--
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) setLocked(token string, user *domain.User) {
	m.token = token
	m.user = user.Clone()
	m.expiresAt = time.Time{}
	if info, err := auth.PeekClaims(token); err == nil {
		m.expiresAt = info.ExpiresAt
	}
}

func (m *Manager) clearLocked() {
	m.user = nil
	m.token = ""
	m.expiresAt = time.Time{}
}

func (m *Manager) begin(ctx context.Context, op string) uint64 {
	m.mu.Lock()
	m.inflight++
	m.err = ""
	gen := m.gen
	m.mu.Unlock()
	m.notify(ctx, op+".start")
	return gen
}

func (m *Manager) end(ctx context.Context, op string) {
	m.mu.Lock()
	m.inflight--
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) fail(ctx context.Context, op string, err error, fallback string) {
	m.logger.Warn("session operation failed", zap.String("operation", op), zap.Error(err))
	m.mu.Lock()
	m.inflight--
	m.err = apperrors.UserMessage(err, fallback)
	m.mu.Unlock()
	m.notify(ctx, op)
}

// failAuthenticated is fail for calls made with the session token. An
// authentication error means the token expired, so the session is dropped
// silently.
func (m *Manager) failAuthenticated(ctx context.Context, op string, err error, fallback string) {
	if !apperrors.IsKind(err, apperrors.KindAuthentication) {
		m.fail(ctx, op, err, fallback)
		return
	}
	m.logger.Info("session expired", zap.String("operation", op))
	if delErr := m.store.Delete(ctx, persistence.KeyToken); delErr != nil {
		m.logger.Warn("failed to drop persisted token", zap.Error(delErr))
	}
	m.api.ClearToken()
	m.mu.Lock()
	m.clearLocked()
	m.inflight--
	m.mu.Unlock()
	m.notify(ctx, op)
}

// reject records a failure detected before any request was made.
func (m *Manager) reject(ctx context.Context, op string, err error) {
	m.mu.Lock()
	m.err = apperrors.UserMessage(err, err.Error())
	m.mu.Unlock()
	m.notify(ctx, op)
}

func (m *Manager) notify(ctx context.Context, op string) {
	if err := m.publisher.Notify(ctx, op, nil); err != nil {
		m.logger.Debug("session change handler failed", zap.String("operation", op), zap.Error(err))
	}
}
