package comments

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
)

// RegisterRoutes sets up comment routes. The repository is built by
// the caller because the reports feature embeds comments in its detail
// view and needs the repo before these routes exist.
func RegisterRoutes(router *gin.RouterGroup, repo *Repository, cfg *config.Config, authRepo *auth.Repository, reportsRepo *reports.Repository) {
	handler := NewHandler(repo, authRepo, reportsRepo, sanitize.NewPolicy())

	comments := router.Group("/comments", auth.RequireAuth(authRepo, cfg))
	{
		comments.POST("", handler.CreateComment)
		comments.PATCH("/:id", handler.UpdateComment)
		comments.DELETE("/:id", handler.DeleteComment)
	}
}
