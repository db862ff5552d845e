package persistence

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/observability"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationsDir = "migrations"

// ExecFunc runs one SQL script.
type ExecFunc func(ctx context.Context, stmt string) error

// RunMigrations executes the embedded SQL migrations in file name order.
// Scripts are idempotent, so they run on every start.
func RunMigrations(ctx context.Context, exec ExecFunc, logger *zap.Logger) error {
	logger = observability.OrNop(logger)
	entries, err := fs.ReadDir(migrationFS, migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	applied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		content, err := migrationFS.ReadFile(path.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		logger.Debug("applying migration", zap.String("file", name))
		if err := exec(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		applied++
	}

	logger.Info("migrations applied", zap.Int("count", applied))
	return nil
}
