package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// principalKey is the gin context key holding the authenticated Principal
const principalKey = "currentUser"

// PrincipalFinder resolves a user id to a Principal. Satisfied by
// *Repository; an interface so middleware tests can fake the store.
type PrincipalFinder interface {
	FindPrincipalByID(ctx context.Context, userID primitive.ObjectID) (*Principal, error)
}

// RequireAuth gates every mutating endpoint. It resolves the session
// cookie to a Principal or rejects with 401 before the handler runs,
// so no handler ever mutates state on behalf of an unresolved identity.
func RequireAuth(finder PrincipalFinder, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, status, msg := resolvePrincipal(c, finder, cfg)
		if principal == nil {
			response.Error(c, status, msg)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set("userID", principal.ID.Hex())
		c.Next()
	}
}

// OptionalAuth resolves the session when one is present but never
// rejects: pages that render fine for anonymous visitors use this.
func OptionalAuth(finder PrincipalFinder, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, _, _ := resolvePrincipal(c, finder, cfg); principal != nil {
			c.Set(principalKey, principal)
			c.Set("userID", principal.ID.Hex())
		}
		c.Next()
	}
}

// resolvePrincipal walks the three failure states in order: no cookie,
// bad token, vanished user (deleted after the token was issued). A
// store failure is not a session failure and reports as 500.
func resolvePrincipal(c *gin.Context, finder PrincipalFinder, cfg *config.Config) (*Principal, int, string) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return nil, http.StatusUnauthorized, "Authentication required"
	}

	claims, err := VerifyToken(token, cfg.JWTSecret)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, http.StatusUnauthorized, "Invalid or expired token"
	}

	principal, err := finder.FindPrincipalByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, http.StatusUnauthorized, "User not found"
		}
		log.Printf("Principal lookup error: %v", err)
		return nil, http.StatusInternalServerError, "Authentication failed"
	}

	return principal, 0, ""
}

// CurrentPrincipal returns the Principal set by RequireAuth/OptionalAuth
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
