package reports

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"github.com/xyz-asif/postmortem/internal/pkg/metrics"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRoutes sets up report routes and returns the repository for
// features that hang off reports (comments, subscriptions)
func RegisterRoutes(router *gin.RouterGroup, db *mongo.Database, cfg *config.Config, authRepo *auth.Repository, categoriesRepo *categories.Repository, comments CommentSource, collector *metrics.Collector) *Repository {
	repo := NewRepository(db)
	handler := NewHandler(repo, authRepo, categoriesRepo, comments, sanitize.NewPolicy(), collector)

	reports := router.Group("/reports")
	{
		reports.GET("", handler.ListReports)
		reports.POST("", auth.RequireAuth(authRepo, cfg), handler.CreateReport)
		reports.GET("/:slug", handler.GetReport)
		reports.PATCH("/:slug", auth.RequireAuth(authRepo, cfg), handler.UpdateReport)
		reports.DELETE("/:slug", auth.RequireAuth(authRepo, cfg), handler.DeleteReport)
	}

	return repo
}
