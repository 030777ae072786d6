package auth

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidRegistration checks the registration inputs. The bar is
// deliberately low (shaped address, 8+ character password); anything
// stricter belongs in the frontend.
func ValidRegistration(email, password string) bool {
	email = strings.TrimSpace(email)
	if email == "" || !emailPattern.MatchString(email) {
		return false
	}
	return len(password) >= 8
}
