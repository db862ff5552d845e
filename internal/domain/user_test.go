package domain

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail(gofakeit.Email()))
	require.True(t, ValidEmail("ada@example.org"))

	for _, bad := range []string{"", "ada", "ada@example", "@.", "ada @example.org"} {
		require.False(t, ValidEmail(bad), bad)
	}
}
