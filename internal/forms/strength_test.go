package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		score    int
		label    string
	}{
		{"", 0, ""},
		{"abc", 0, "Weak"},
		{"abcdefgh", 1, "Weak"},
		{"abcdefg1", 2, "Fair"},
		{"Abcdefg1", 3, "Good"},
		{"Abcdef1!", 4, "Strong"},
		{"A1!", 3, "Good"},
	}
	for _, tc := range cases {
		got := PasswordStrength(tc.password)
		require.Equal(t, tc.score, got.Score, tc.password)
		require.Equal(t, tc.label, got.Label, tc.password)
	}
}
