package reports

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"github.com/xyz-asif/postmortem/internal/pkg/metrics"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommentSource supplies the comments embedded in a report detail.
// Satisfied by an adapter over the comments feature; declared here so
// reports never imports that package.
type CommentSource interface {
	ListForReport(ctx context.Context, reportID primitive.ObjectID) ([]CommentView, error)
	CountForReport(ctx context.Context, reportID primitive.ObjectID) (int64, error)
}

// Store is the persistence surface the handler needs. Satisfied by
// *Repository; an interface so handler tests can fake the store.
type Store interface {
	List(ctx context.Context, categoryID *primitive.ObjectID, sort string) ([]Report, error)
	Create(ctx context.Context, report *Report) error
	AllocateSlug(ctx context.Context, title string) (string, error)
	GetBySlug(ctx context.Context, slug string) (*Report, error)
	IncrementViewCount(ctx context.Context, id primitive.ObjectID) error
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*Report, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler handles HTTP requests for postmortem reports
type Handler struct {
	repo           Store
	authRepo       *auth.Repository
	categoriesRepo *categories.Repository
	comments       CommentSource
	sanitizer      *sanitize.Policy
	metrics        *metrics.Collector
}

func NewHandler(repo Store, authRepo *auth.Repository, categoriesRepo *categories.Repository, comments CommentSource, sanitizer *sanitize.Policy, collector *metrics.Collector) *Handler {
	return &Handler{
		repo:           repo,
		authRepo:       authRepo,
		categoriesRepo: categoriesRepo,
		comments:       comments,
		sanitizer:      sanitizer,
		metrics:        collector,
	}
}

// ListReports returns the most relevant reports for the front page
// @Summary List reports
// @Description List up to 20 reports, optionally filtered by category and sorted by newest, votes, or views
// @Tags reports
// @Produce json
// @Param category query string false "Category id to filter by"
// @Param sort query string false "Sort order" Enums(newest, votes, views)
// @Success 200 {array} ReportListItem
// @Failure 400 {object} response.MessageResponse
// @Router /reports [get]
func (h *Handler) ListReports(c *gin.Context) {
	var categoryID *primitive.ObjectID
	if raw := c.Query("category"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		categoryID = &id
	}

	reports, err := h.repo.List(c.Request.Context(), categoryID, c.Query("sort"))
	if err != nil {
		log.Printf("List reports error: %v", err)
		response.InternalServerError(c, "Failed to fetch reports")
		return
	}

	items := make([]ReportListItem, 0, len(reports))
	categoryCache := map[primitive.ObjectID]*categories.Category{}
	for _, report := range reports {
		item := ReportListItem{Report: report}

		if author, err := h.authRepo.GetAuthorInfo(c.Request.Context(), report.AuthorID); err == nil {
			item.Author = ListAuthor{JobTitle: author.JobTitle, Reputation: author.Reputation}
		}

		category, cached := categoryCache[report.CategoryID]
		if !cached {
			category, _ = h.categoriesRepo.GetByID(c.Request.Context(), report.CategoryID)
			categoryCache[report.CategoryID] = category
		}
		if category != nil {
			item.Category = *category
		}

		if count, err := h.comments.CountForReport(c.Request.Context(), report.ID); err == nil {
			item.CommentCount = count
		}

		items = append(items, item)
	}

	response.OK(c, items)
}

// CreateReport publishes a new postmortem
// @Summary Create a report
// @Description Publish a postmortem; the slug is derived from the title
// @Tags reports
// @Accept json
// @Produce json
// @Param request body CreateReportRequest true "Report details"
// @Success 201 {object} Report
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Security CookieAuth
// @Router /reports [post]
func (h *Handler) CreateReport(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.CategoryID == "" || strings.TrimSpace(req.Description) == "" {
		response.BadRequest(c, "Missing required fields")
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		response.BadRequest(c, "Invalid category")
		return
	}
	if _, err := h.categoriesRepo.GetByID(c.Request.Context(), categoryID); err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			response.BadRequest(c, "Invalid category")
			return
		}
		log.Printf("Create report error: %v", err)
		response.InternalServerError(c, "Failed to create report")
		return
	}

	report := &Report{
		Title:       req.Title,
		Description: h.sanitizer.HTML(req.Description),
		Reason:      h.sanitizer.HTML(req.Reason),
		Learning:    h.sanitizer.HTML(req.Learning),
		AuthorID:    principal.ID,
		CategoryID:  categoryID,
	}

	// The probe can lose a race against a concurrent insert of the same
	// title; the unique index turns that into ErrSlugTaken and we probe
	// again against the now-current state.
	for {
		slug, err := h.repo.AllocateSlug(c.Request.Context(), req.Title)
		if err != nil {
			log.Printf("Create report error: %v", err)
			response.InternalServerError(c, "Failed to create report")
			return
		}
		report.Slug = slug

		err = h.repo.Create(c.Request.Context(), report)
		if err == nil {
			break
		}
		if errors.Is(err, ErrSlugTaken) {
			continue
		}
		log.Printf("Create report error: %v", err)
		response.InternalServerError(c, "Failed to create report")
		return
	}

	response.Created(c, report)
}

// GetReport returns one report with its author, category, and comments
// @Summary Get a report
// @Description Fetch a report by slug; each fetch counts as a view
// @Tags reports
// @Produce json
// @Param slug path string true "Report slug"
// @Success 200 {object} ReportDetail
// @Failure 404 {object} response.MessageResponse
// @Router /reports/{slug} [get]
func (h *Handler) GetReport(c *gin.Context) {
	report, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		log.Printf("Get report error: %v", err)
		response.InternalServerError(c, "Failed to fetch report")
		return
	}

	// The view is counted after the fetch, so the response still shows
	// the count as it was when the reader arrived.
	if err := h.repo.IncrementViewCount(c.Request.Context(), report.ID); err != nil {
		log.Printf("View count error for %s: %v", report.Slug, err)
	}
	h.metrics.RecordReportView()

	detail := ReportDetail{Report: *report}

	if author, err := h.authRepo.GetAuthorInfo(c.Request.Context(), report.AuthorID); err == nil {
		detail.Author = *author
	}
	if category, err := h.categoriesRepo.GetByID(c.Request.Context(), report.CategoryID); err == nil {
		detail.Category = *category
	}

	comments, err := h.comments.ListForReport(c.Request.Context(), report.ID)
	if err != nil {
		log.Printf("Get report error: %v", err)
		response.InternalServerError(c, "Failed to fetch report")
		return
	}
	detail.Comments = comments

	response.OK(c, detail)
}

// UpdateReport edits a report's text fields
// @Summary Update a report
// @Description Partially update a report owned by the caller; the slug never changes
// @Tags reports
// @Accept json
// @Produce json
// @Param slug path string true "Report slug"
// @Param request body UpdateReportRequest true "Fields to change"
// @Success 200 {object} Report
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /reports/{slug} [patch]
func (h *Handler) UpdateReport(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		log.Printf("Update report error: %v", err)
		response.InternalServerError(c, "Failed to update report")
		return
	}

	// Existence is answered before ownership: a 404 never leaks whether
	// the caller would have been allowed.
	if report.AuthorID != principal.ID {
		response.Forbidden(c, "Not authorized to update this report")
		return
	}

	updates := bson.M{}
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if req.Description != "" {
		updates["description"] = h.sanitizer.HTML(req.Description)
	}
	if req.Reason != "" {
		updates["reason"] = h.sanitizer.HTML(req.Reason)
	}
	if req.Learning != "" {
		updates["learning"] = h.sanitizer.HTML(req.Learning)
	}

	if len(updates) == 0 {
		response.OK(c, report)
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), report.ID, updates)
	if err != nil {
		log.Printf("Update report error: %v", err)
		response.InternalServerError(c, "Failed to update report")
		return
	}

	response.OK(c, updated)
}

// DeleteReport removes a report
// @Summary Delete a report
// @Description Delete a report owned by the caller
// @Tags reports
// @Produce json
// @Param slug path string true "Report slug"
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /reports/{slug} [delete]
func (h *Handler) DeleteReport(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	report, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		log.Printf("Delete report error: %v", err)
		response.InternalServerError(c, "Failed to delete report")
		return
	}

	if report.AuthorID != principal.ID {
		response.Forbidden(c, "Not authorized to delete this report")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), report.ID); err != nil {
		log.Printf("Delete report error: %v", err)
		response.InternalServerError(c, "Failed to delete report")
		return
	}

	response.Message(c, "Report deleted successfully")
}
