package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches what existing stored credentials were hashed with
const bcryptCost = 10

// HashPassword hashes a plaintext password for storage. bcrypt salts
// internally, so hashing the same password twice yields different
// credentials.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks a plaintext password against a stored
// credential. Malformed input is a mismatch, never a panic.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
