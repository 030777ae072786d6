package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidRegistration(t *testing.T) {
	require.True(t, ValidRegistration("a@x.com", "password123"))
	require.True(t, ValidRegistration("  a@x.com  ", "password123"))

	// Bad emails
	require.False(t, ValidRegistration("", "password123"))
	require.False(t, ValidRegistration("not-an-email", "password123"))
	require.False(t, ValidRegistration("a@x", "password123"))
	require.False(t, ValidRegistration("a b@x.com", "password123"))

	// Short passwords
	require.False(t, ValidRegistration("a@x.com", ""))
	require.False(t, ValidRegistration("a@x.com", "short"))
	require.False(t, ValidRegistration("a@x.com", "1234567"))
	require.True(t, ValidRegistration("a@x.com", "12345678"))
}
