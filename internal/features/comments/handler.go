package comments

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
	"github.com/xyz-asif/postmortem/internal/pkg/sanitize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface the handler needs. Satisfied by
// *Repository; an interface so handler tests can fake the store.
type Store interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Comment, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AuthorFinder resolves the byline shown on a comment. Satisfied by
// *auth.Repository.
type AuthorFinder interface {
	GetAuthorInfo(ctx context.Context, userID primitive.ObjectID) (*auth.AuthorInfo, error)
}

// ReportFinder checks the report a comment attaches to. Satisfied by
// *reports.Repository.
type ReportFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*reports.Report, error)
}

// Handler handles HTTP requests for comments
type Handler struct {
	repo        Store
	authRepo    AuthorFinder
	reportsRepo ReportFinder
	sanitizer   *sanitize.Policy
}

func NewHandler(repo Store, authRepo AuthorFinder, reportsRepo ReportFinder, sanitizer *sanitize.Policy) *Handler {
	return &Handler{
		repo:        repo,
		authRepo:    authRepo,
		reportsRepo: reportsRepo,
		sanitizer:   sanitizer,
	}
}

// withAuthor decorates a comment with its author's byline
func (h *Handler) withAuthor(c *gin.Context, comment *Comment) CommentResponse {
	resp := CommentResponse{Comment: *comment}
	if author, err := h.authRepo.GetAuthorInfo(c.Request.Context(), comment.AuthorID); err == nil {
		resp.Author = CommentAuthor{ID: author.ID, JobTitle: author.JobTitle, Reputation: author.Reputation}
	}
	return resp
}

// CreateComment adds a comment or a reply to a report
// @Summary Create a comment
// @Description Comment on a report, optionally replying to a top-level comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment details"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	if strings.TrimSpace(req.Content) == "" || req.ReportID == "" {
		response.BadRequest(c, "Missing required fields")
		return
	}

	reportID, err := primitive.ObjectIDFromHex(req.ReportID)
	if err != nil {
		response.NotFound(c, "Report not found")
		return
	}
	if _, err := h.reportsRepo.GetByID(c.Request.Context(), reportID); err != nil {
		if errors.Is(err, reports.ErrReportNotFound) {
			response.NotFound(c, "Report not found")
			return
		}
		log.Printf("Create comment error: %v", err)
		response.InternalServerError(c, "Failed to create comment")
		return
	}

	// A reply's parent must exist, sit under the same report, and be
	// top-level itself. Threads stay one level deep.
	var parentID *primitive.ObjectID
	if req.ParentID != "" {
		id, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			response.BadRequest(c, "Invalid parent comment")
			return
		}
		parent, err := h.repo.GetByID(c.Request.Context(), id)
		if err != nil || parent.ReportID != reportID || parent.ParentID != nil {
			response.BadRequest(c, "Invalid parent comment")
			return
		}
		parentID = &id
	}

	comment := &Comment{
		Content:  h.sanitizer.HTML(req.Content),
		AuthorID: principal.ID,
		ReportID: reportID,
		ParentID: parentID,
	}
	if err := h.repo.Create(c.Request.Context(), comment); err != nil {
		log.Printf("Create comment error: %v", err)
		response.InternalServerError(c, "Failed to create comment")
		return
	}

	response.Created(c, h.withAuthor(c, comment))
}

// UpdateComment edits a comment's content
// @Summary Update a comment
// @Description Edit a comment owned by the caller
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment id"
// @Param request body UpdateCommentRequest true "New content"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /comments/{id} [patch]
func (h *Handler) UpdateComment(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		response.BadRequest(c, "Comment content is required")
		return
	}

	comment, err := h.lookup(c)
	if err != nil {
		return
	}

	if comment.AuthorID != principal.ID {
		response.Forbidden(c, "Not authorized to update this comment")
		return
	}

	updated, err := h.repo.UpdateContent(c.Request.Context(), comment.ID, h.sanitizer.HTML(req.Content))
	if err != nil {
		log.Printf("Update comment error: %v", err)
		response.InternalServerError(c, "Failed to update comment")
		return
	}

	response.OK(c, h.withAuthor(c, updated))
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Description Delete a comment owned by the caller
// @Tags comments
// @Produce json
// @Param id path string true "Comment id"
// @Success 200 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 403 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /comments/{id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	comment, err := h.lookup(c)
	if err != nil {
		return
	}

	if comment.AuthorID != principal.ID {
		response.Forbidden(c, "Not authorized to delete this comment")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), comment.ID); err != nil {
		log.Printf("Delete comment error: %v", err)
		response.InternalServerError(c, "Failed to delete comment")
		return
	}

	response.Message(c, "Comment deleted successfully")
}

// lookup fetches the comment named in the path, writing the response
// itself when it cannot
func (h *Handler) lookup(c *gin.Context) (*Comment, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Comment not found")
		return nil, err
	}

	comment, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			response.NotFound(c, "Comment not found")
			return nil, err
		}
		log.Printf("Comment lookup error: %v", err)
		response.InternalServerError(c, "Failed to fetch comment")
		return nil, err
	}
	return comment, nil
}
