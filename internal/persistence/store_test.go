package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/creatorhub/internal/config"
)

func getTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx, cancel := getTestContext()
	defer cancel()

	_, err := s.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	require.NoError(t, s.Set(ctx, KeyToken, "def"))
	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "def", v)

	require.NoError(t, s.Delete(ctx, KeyToken))
	require.NoError(t, s.Delete(ctx, KeyToken))
	_, err = s.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrNotFound)

	type draft struct {
		Email     string `json:"email"`
		IsCreator bool   `json:"isCreator"`
	}
	found, err := LoadJSON(ctx, s, KeyRegisterForm, &draft{})
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, SaveJSON(ctx, s, KeyRegisterForm, draft{Email: "a@b.co", IsCreator: true}))
	var got draft
	found, err = LoadJSON(ctx, s, KeyRegisterForm, &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, draft{Email: "a@b.co", IsCreator: true}, got)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	dbPath := filepath.Join(t.TempDir(), "state.db")
	s, err := NewSQLiteStore(ctx, dbPath, zap.NewNop())
	require.NoError(t, err)
	exerciseStore(t, s)

	require.NoError(t, s.Set(ctx, KeyLoginEmail, "fan@example.com"))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteStore(ctx, dbPath, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()
	v, err := reopened.Get(ctx, KeyLoginEmail)
	require.NoError(t, err)
	require.Equal(t, "fan@example.com", v)
}

func TestSQLiteStoreWithoutLogger(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	s, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "state.db"), nil)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, KeyToken, "abc"))
	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, "abc", v)
}

func TestLoadJSONRejectsGarbage(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, KeyRegisterForm, "{not json"))

	var v map[string]any
	_, err := LoadJSON(ctx, s, KeyRegisterForm, &v)
	require.Error(t, err)
}

func TestOpenMemoryAndUnknownDriver(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	s, err := Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}, zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	_, err = Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "tape"}}, zap.NewNop())
	require.Error(t, err)

	_, err = Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverPostgres}}, zap.NewNop())
	require.Error(t, err)
}
