package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignedToken(t *testing.T) {
	token, err := Sign([]byte("s"), "u1", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "u1", claims.Subject)
}

func TestParseOpaqueToken(t *testing.T) {
	_, err := Parse("T")
	assert.ErrorIs(t, err, ErrOpaqueToken)
}

func TestExpired(t *testing.T) {
	live, err := Sign([]byte("s"), "u1", "admin", time.Hour)
	require.NoError(t, err)
	dead, err := Sign([]byte("s"), "u1", "admin", -time.Minute)
	require.NoError(t, err)

	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"live jwt", live, false},
		{"expired jwt", dead, true},
		{"opaque", "T", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.token, now))
		})
	}
}
