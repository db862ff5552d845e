package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/api/http/handlers"
	"github.com/spec-kit/creatorhub/internal/auth"
	"github.com/spec-kit/creatorhub/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Content        *handlers.ContentHandler
	Subscriptions  *handlers.SubscriptionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// AppOptions configures NewApp.
type AppOptions struct {
	Name    string
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Timeout time.Duration
	Routes  RouteConfig
}

// NewApp builds the fiber app serving the REST contract under /api.
func NewApp(opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, observability.OrNop(opts.Logger), opts.Metrics, opts.Timeout)
	RegisterRoutes(app, opts.Routes)
	return app
}

// RegisterRoutes wires HTTP routes. Static segments are registered before
// parameterized ones so /content/trending never matches /content/:id.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)

	api := app.Group("/api")
	requireAuth := cfg.AuthMiddleware.Handle
	requireCreator := auth.RequireCreator()

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/forgotPassword", cfg.Auth.ForgotPassword)
	authGroup.Post("/resetPassword/:token", cfg.Auth.ResetPassword)

	users := api.Group("/users")
	users.Get("/me", requireAuth, cfg.Users.Me)
	users.Put("/update", requireAuth, cfg.Users.Update)
	users.Post("/subscription-tiers", requireAuth, requireCreator, cfg.Users.AddTier)
	users.Get("/profile/:username", cfg.Users.Profile)
	users.Get("/:id/subscription-tiers", cfg.Users.Tiers)
	users.Get("/:id", cfg.Users.Get)

	content := api.Group("/content")
	content.Get("/trending", cfg.Content.Trending)
	content.Get("/categories", cfg.Content.Categories)
	content.Get("/creator/stats", requireAuth, requireCreator, cfg.Content.CreatorStats)
	content.Get("/creator", requireAuth, requireCreator, cfg.Content.CreatorContent)
	content.Get("/user/:id", cfg.Content.UserContent)
	content.Post("/", requireAuth, requireCreator, cfg.Content.Create)
	content.Get("/:id/comments", cfg.Content.Comments)
	content.Post("/:id/comment", requireAuth, cfg.Content.Comment)
	content.Post("/:id/like", requireAuth, cfg.Content.Like)
	content.Delete("/:id/unlike", requireAuth, cfg.Content.Unlike)
	content.Get("/:id", cfg.AuthMiddleware.Optional, cfg.Content.Get)
	content.Put("/:id", requireAuth, requireCreator, cfg.Content.Update)
	content.Delete("/:id", requireAuth, requireCreator, cfg.Content.Delete)

	subs := api.Group("/subscriptions", requireAuth)
	subs.Post("/create", cfg.Subscriptions.Create)
	subs.Get("/check/:creatorId", cfg.Subscriptions.Check)
	subs.Get("/user", cfg.Subscriptions.ForUser)
	subs.Get("/creator", requireCreator, cfg.Subscriptions.ForCreator)
}
