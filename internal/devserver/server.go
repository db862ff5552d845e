package devserver

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/creatorhub/internal/api/http"
	"github.com/spec-kit/creatorhub/internal/api/http/handlers"
	"github.com/spec-kit/creatorhub/internal/auth"
	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/observability"
	"github.com/spec-kit/creatorhub/internal/repository"
	"github.com/spec-kit/creatorhub/internal/service"
	"github.com/spec-kit/creatorhub/internal/worker"
)

// Server is the in-memory development backend serving the REST contract.
type Server struct {
	App *fiber.App

	Auth          *service.AuthService
	Users         *service.UserService
	Content       *service.ContentService
	Subscriptions *service.SubscriptionService

	worker *worker.NotificationWorker
	cancel context.CancelFunc
	logger *zap.Logger
}

// Options tweaks New. A nil Notifier logs reset links.
type Options struct {
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Notifier service.PasswordResetNotifier
}

// New wires repositories, services and routes.
func New(cfg config.Config, opts Options) *Server {
	logger := observability.OrNop(opts.Logger)

	userRepo := repository.NewUserRepository()
	contentRepo := repository.NewContentRepository()
	subRepo := repository.NewSubscriptionRepository()
	resetRepo := repository.NewPasswordResetRepository()

	notifier := opts.Notifier
	if notifier == nil {
		notifier = service.NewNotificationService(logger, cfg.DevServer)
	}
	notifyWorker := worker.NewNotificationWorker(notifier, logger)
	ctx, cancel := context.WithCancel(context.Background())
	notifyWorker.Start(ctx)

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Notifier:          notifyWorker,
	})
	userService := service.NewUserService(userRepo)
	contentService := service.NewContentService(service.ContentDependencies{
		ContentRepo:      contentRepo,
		UserRepo:         userRepo,
		SubscriptionRepo: subRepo,
	})
	subService := service.NewSubscriptionService(subRepo, userRepo)

	app := httptransport.NewApp(httptransport.AppOptions{
		Name:    cfg.App.Name,
		Logger:  logger,
		Metrics: opts.Metrics,
		Timeout: cfg.API.Timeout(),
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version),
			Auth:           handlers.NewAuthHandler(authService),
			Users:          handlers.NewUsersHandler(userService),
			Content:        handlers.NewContentHandler(contentService),
			Subscriptions:  handlers.NewSubscriptionsHandler(subService),
			AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
		},
	})

	return &Server{
		App:           app,
		Auth:          authService,
		Users:         userService,
		Content:       contentService,
		Subscriptions: subService,
		worker:        notifyWorker,
		cancel:        cancel,
		logger:        logger,
	}
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.App.Listen(addr)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.App.Listener(ln)
}

// Shutdown stops the HTTP server and flushes pending notifications.
func (s *Server) Shutdown() error {
	err := s.App.Shutdown()
	s.worker.Stop()
	s.cancel()
	return err
}
