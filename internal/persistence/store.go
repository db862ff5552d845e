package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/config"
)

// Well-known keys of persisted client state.
const (
	KeyToken        = "token"
	KeyRegisterForm = "registerFormData"
	KeyLoginEmail   = "loginEmail"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("persistence: key not found")

// Store is durable string key-value storage for client state.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return NewMemoryStore(), nil
	case config.StoreDriverSQLite:
		return NewSQLiteStore(ctx, cfg.Store.SQLitePath, logger)
	case config.StoreDriverRedis:
		return NewRedisStore(NewRedis(cfg.Redis, logger), cfg.Store.KeyPrefix), nil
	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.Exec, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return NewPostgresStore(pg), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// LoadJSON decodes the JSON value at key into v. It reports false when the
// key is absent.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON stores v as JSON at key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
