// Package apiclient is the typed REST client of the creator platform API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/observability"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// HeaderRequestID carries the per-call correlation id.
const HeaderRequestID = "X-Request-ID"

// Config points the client at a backend.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// ConfigFrom adapts the env-driven API configuration.
func ConfigFrom(cfg config.APIConfig) Config {
	return Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout(), UserAgent: cfg.UserAgent}
}

// Client issues JSON calls and keeps the default bearer token. It is safe
// for concurrent use.
type Client struct {
	cfg     Config
	logger  *zap.Logger
	metrics *observability.Metrics

	mu    sync.RWMutex
	token string
}

// New builds a client. Logger and metrics may be nil.
func New(cfg Config, logger *zap.Logger, metrics *observability.Metrics) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, logger: observability.OrNop(logger), metrics: metrics}
}

// SetToken makes token the default Authorization header of later calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the default Authorization header.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token returns the current bearer token, empty when signed out.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type call struct {
	method   string
	endpoint string // route template, used as metrics key
	path     string
	query    url.Values
	body     any
	out      any
}

func (c *Client) do(ctx context.Context, rc call) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, rc)
	c.metrics.RecordRequest(rc.endpoint, rc.method, status, time.Since(start))
	if err != nil {
		de := apperrors.ToDomainError(err)
		c.metrics.RecordError(rc.endpoint, rc.method, de.Code)
		c.logger.Warn("api call failed",
			zap.String("method", rc.method),
			zap.String("endpoint", rc.endpoint),
			zap.Int("status", status),
			zap.String("code", de.Code),
			zap.Error(err))
		return err
	}
	c.logger.Debug("api call",
		zap.String("method", rc.method),
		zap.String("endpoint", rc.endpoint),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)))
	return nil
}

func (c *Client) roundTrip(ctx context.Context, rc call) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, apperrors.NewNetworkError(err)
	}
	timeout, err := c.timeout(ctx)
	if err != nil {
		return 0, apperrors.NewNetworkError(err)
	}

	var payload []byte
	if rc.body != nil {
		payload, err = json.Marshal(rc.body)
		if err != nil {
			return 0, apperrors.NewInternalError(err)
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(rc.method)
	req.SetRequestURI(c.cfg.BaseURL + rc.path)
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return 0, apperrors.NewNetworkError(err)
	}
	if len(rc.query) > 0 {
		a.QueryString(rc.query.Encode())
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Set(HeaderRequestID, uuid.NewString())
	if c.cfg.UserAgent != "" {
		a.UserAgent(c.cfg.UserAgent)
	}
	if token := c.Token(); token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if payload != nil {
		a.ContentType(fiber.MIMEApplicationJSON)
		a.Body(payload)
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	status, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return 0, apperrors.NewNetworkError(errors.Join(errs...))
	}
	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return status, apperrors.FromResponse(status, raw)
	}
	if rc.out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, rc.out); err != nil {
			return status, apperrors.NewInternalError(err)
		}
	}
	return status, nil
}

// timeout is the configured per-call timeout, shortened to the context
// deadline when that comes first.
func (c *Client) timeout(ctx context.Context) (time.Duration, error) {
	timeout := c.cfg.Timeout
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, context.DeadlineExceeded
	}
	if timeout == 0 || remaining < timeout {
		timeout = remaining
	}
	return timeout, nil
}

func pathID(id string) string {
	return "/" + url.PathEscape(id)
}
