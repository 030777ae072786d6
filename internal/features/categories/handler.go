package categories

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListCategories returns every category
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} Category
// @Failure 500 {object} response.MessageResponse
// @Router /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		response.InternalServerError(c, "Failed to fetch categories")
		return
	}

	response.OK(c, categories)
}

// GetCategory returns a single category by slug
// @Summary Get category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} Category
// @Failure 404 {object} response.MessageResponse
// @Router /categories/{slug} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	category, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(c, "Category not found")
			return
		}
		log.Printf("Error fetching category: %v", err)
		response.InternalServerError(c, "Failed to fetch category")
		return
	}

	response.OK(c, category)
}
