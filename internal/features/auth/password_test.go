package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, VerifyPassword("password123", hash))
	require.False(t, VerifyPassword("password124", hash))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("password123")
	require.NoError(t, err)
	second, err := HashPassword("password123")
	require.NoError(t, err)

	// Same plaintext, different stored credentials
	require.NotEqual(t, first, second)
	require.True(t, VerifyPassword("password123", first))
	require.True(t, VerifyPassword("password123", second))
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	require.False(t, VerifyPassword("password123", "not-a-bcrypt-hash"))
	require.False(t, VerifyPassword("password123", ""))
}
