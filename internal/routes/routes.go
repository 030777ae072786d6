package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"github.com/xyz-asif/postmortem/internal/features/comments"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"github.com/xyz-asif/postmortem/internal/features/subscriptions"
	"github.com/xyz-asif/postmortem/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, cfg *config.Config, collector *metrics.Collector) {
	api := router.Group("/api")

	// The comments repository is built ahead of its routes: report
	// detail pages embed the discussion, so the reports feature needs a
	// comment source before the comments feature registers.
	authRepo := auth.RegisterRoutes(api, db, cfg)
	categoriesRepo := categories.RegisterRoutes(api, db)
	commentsRepo := comments.NewRepository(db)
	commentSource := comments.NewSource(commentsRepo, authRepo)

	reportsRepo := reports.RegisterRoutes(api, db, cfg, authRepo, categoriesRepo, commentSource, collector)
	comments.RegisterRoutes(api, commentsRepo, cfg, authRepo, reportsRepo)
	subscriptions.RegisterRoutes(api, db, cfg, authRepo, reportsRepo, categoriesRepo)
}
