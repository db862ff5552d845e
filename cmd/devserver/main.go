package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/config"
	"github.com/spec-kit/creatorhub/internal/devserver"
	"github.com/spec-kit/creatorhub/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	srv := devserver.New(*cfg, devserver.Options{
		Logger:  logger,
		Metrics: observability.NewMetrics(),
	})

	if cfg.DevServer.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := srv.Seed(ctx, uint64(time.Now().UnixNano()))
		cancel()
		if err != nil {
			logger.Fatal("failed to seed dev data", zap.Error(err))
		}
		logger.Info("seeded dev data", zap.String("password", devserver.SeedPassword))
	}

	go func() {
		logger.Info("dev server listening", zap.String("addr", cfg.DevServer.Addr()))
		if err := srv.Listen(cfg.DevServer.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := srv.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
