package auth

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/pkg/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes registers the auth routes and initializes dependencies
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo, cfg)

	// Credential endpoints get a per-IP limiter to slow brute forcing.
	// These routes are public, so evict idle IPs or the map grows with
	// every client that ever hits them.
	credentialLimiter := ratelimit.New(10, time.Minute)
	credentialLimiter.StartCleanup(5 * time.Minute)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", ratelimit.Middleware(credentialLimiter), handler.Register)
		authRoutes.POST("/login", ratelimit.Middleware(credentialLimiter), handler.Login)
		authRoutes.POST("/logout", handler.Logout)
		authRoutes.GET("/me", OptionalAuth(repo, cfg), handler.Me)
	}

	// The repository doubles as the principal resolver for the other
	// features' RequireAuth middleware.
	return repo
}
