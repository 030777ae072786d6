package subscriptions

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes sets up subscription routes
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, authRepo *auth.Repository, reportsRepo *reports.Repository, categoriesRepo *categories.Repository) {
	repo := NewRepository(db)
	handler := NewHandler(repo, reportsRepo, categoriesRepo)

	subscriptions := router.Group("/subscriptions", auth.RequireAuth(authRepo, cfg))
	{
		subscriptions.GET("", handler.ListSubscriptions)
		subscriptions.POST("", handler.CreateSubscription)
		subscriptions.DELETE("", handler.DeleteSubscription)
	}
}
