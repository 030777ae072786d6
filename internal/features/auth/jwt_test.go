package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("64f000000000000000000001", testSecret)
	require.NoError(t, err)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "64f000000000000000000001", claims.UserID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("64f000000000000000000001", testSecret)
	require.NoError(t, err)

	_, err = VerifyToken(token, "some-other-secret")
	require.Error(t, err)
}

func TestTokenTampered(t *testing.T) {
	token, err := GenerateToken("64f000000000000000000001", testSecret)
	require.NoError(t, err)

	// Flip a character in the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = VerifyToken(tampered, testSecret)
	require.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	claims := &Claims{
		UserID: "64f000000000000000000001",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = VerifyToken(signed, testSecret)
	require.Error(t, err)
}

func TestTokenRejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never verify
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "x"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyToken(signed, testSecret)
	require.Error(t, err)
}
