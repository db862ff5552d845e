package forms

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/creatorhub/internal/persistence"
)

func getTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func TestRegisterDraftRoundTrip(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	store := persistence.NewMemoryStore()
	drafts := NewDrafts(store)

	_, ok, err := drafts.Register(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	form := RegisterForm{
		Name:            gofakeit.Name(),
		Username:        gofakeit.Username(),
		Email:           gofakeit.Email(),
		Password:        "secret-pass",
		ConfirmPassword: "secret-pass",
		IsCreator:       true,
	}
	require.NoError(t, drafts.SaveRegister(ctx, form))

	raw, err := store.Get(ctx, persistence.KeyRegisterForm)
	require.NoError(t, err)
	require.NotContains(t, raw, "secret-pass")

	draft, ok, err := drafts.Register(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	var restored RegisterForm
	draft.Apply(&restored)
	require.Equal(t, form.Name, restored.Name)
	require.Equal(t, form.Username, restored.Username)
	require.Equal(t, form.Email, restored.Email)
	require.True(t, restored.IsCreator)
	require.Empty(t, restored.Password)

	require.NoError(t, drafts.ClearRegister(ctx))
	_, ok, err = drafts.Register(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoginEmail(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()

	drafts := NewDrafts(persistence.NewMemoryStore())

	email, err := drafts.LoginEmail(ctx)
	require.NoError(t, err)
	require.Empty(t, email)

	require.NoError(t, drafts.SaveLoginEmail(ctx, "fan@example.com"))
	require.NoError(t, drafts.SaveLoginEmail(ctx, " "))

	email, err = drafts.LoginEmail(ctx)
	require.NoError(t, err)
	require.Equal(t, "fan@example.com", email)
}
