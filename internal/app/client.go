// Package app wires the client: configuration, storage, the REST client
// and the state managers the pages consume.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/apiclient"
	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/content"
	"github.com/spec-kit/creatorhub/internal/events"
	"github.com/spec-kit/creatorhub/internal/forms"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/pages"
	"github.com/spec-kit/creatorhub/internal/persistence"
	"github.com/spec-kit/creatorhub/internal/session"
	"github.com/spec-kit/creatorhub/internal/subscription"
)

// Options overrides parts of the wiring. Every field is optional.
type Options struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Store   persistence.Store
}

// Client is one running client. Build it with New, call Start once and
// Close when done.
type Client struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Events  events.Dispatcher
	Store   persistence.Store
	API     *apiclient.Client

	Session       *session.Manager
	Content       *content.Manager
	Subscriptions *subscription.Manager
	Drafts        *forms.Drafts

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	stop   func()

	mu     sync.Mutex
	viewer string
	closed bool
}

// New builds the client from cfg.
func New(ctx context.Context, cfg *config.Config, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		var err error
		logger, err = observability.NewLogger(cfg.Logger, cfg.App)
		if err != nil {
			return nil, err
		}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	store := opts.Store
	if store == nil {
		var err error
		store, err = persistence.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	api := apiclient.New(apiclient.ConfigFrom(cfg.API), logger, metrics)
	sess := session.NewManager(api, store, session.Options{Logger: logger, Dispatcher: dispatcher})

	bg, cancel := context.WithCancel(context.Background())
	c := &Client{
		Config:        cfg,
		Logger:        logger,
		Metrics:       metrics,
		Events:        dispatcher,
		Store:         store,
		API:           api,
		Session:       sess,
		Content:       content.NewManager(api, sess, content.Options{Logger: logger, Dispatcher: dispatcher}),
		Subscriptions: subscription.NewManager(api, sess, subscription.Options{Logger: logger, Dispatcher: dispatcher}),
		Drafts:        forms.NewDrafts(store),
		ctx:           bg,
		cancel:        cancel,
	}
	c.stop = dispatcher.Subscribe(events.EventSessionChanged, c.onSessionChanged)
	return c, nil
}

// Start restores the persisted session. A rejected token has already been
// discarded when the error is returned.
func (c *Client) Start(ctx context.Context) error {
	if err := c.Session.Restore(ctx); err != nil {
		c.Logger.Info("session not restored", zap.Error(err))
		return err
	}
	return nil
}

// Pages returns the dependencies every page takes.
func (c *Client) Pages() pages.Deps {
	return pages.Deps{
		Session:       c.Session,
		Content:       c.Content,
		Subscriptions: c.Subscriptions,
		Directory:     c.API,
		Drafts:        c.Drafts,
		Events:        c.Events,
		Logger:        c.Logger,
	}
}

// Wait blocks until background refreshes started by session changes end.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Close stops background work and releases the store. Session changes
// after Close start no new refreshes. Later calls do nothing.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.stop()
	c.cancel()
	c.wg.Wait()
	_ = c.Logger.Sync()
	return c.Store.Close()
}

// onSessionChanged drops the previous viewer's data when the signed-in
// user changes and loads a creator's own content in the background.
func (c *Client) onSessionChanged(ctx context.Context, _ events.Event) error {
	user := c.Session.CurrentUser()
	id := ""
	if user != nil {
		id = user.ID
	}

	c.mu.Lock()
	changed := id != c.viewer
	c.viewer = id
	c.mu.Unlock()
	if !changed {
		return nil
	}

	c.Content.ResetViewerData(ctx)
	c.Subscriptions.ResetViewerData(ctx)
	if user == nil || !user.IsCreator {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Content.FetchCreatorContent(c.ctx); err != nil {
			c.Logger.Warn("creator content refresh failed", zap.Error(err))
		}
	}()
	return nil
}
