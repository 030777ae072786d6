package subscriptions

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/features/auth"
	"github.com/xyz-asif/postmortem/internal/features/categories"
	"github.com/xyz-asif/postmortem/internal/features/reports"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Handler handles HTTP requests for subscriptions
type Handler struct {
	repo           *Repository
	reportsRepo    *reports.Repository
	categoriesRepo *categories.Repository
}

func NewHandler(repo *Repository, reportsRepo *reports.Repository, categoriesRepo *categories.Repository) *Handler {
	return &Handler{
		repo:           repo,
		reportsRepo:    reportsRepo,
		categoriesRepo: categoriesRepo,
	}
}

// ListSubscriptions returns the caller's subscriptions with their targets
// @Summary List subscriptions
// @Description List the caller's subscriptions with the subscribed report or category embedded
// @Tags subscriptions
// @Produce json
// @Success 200 {array} SubscriptionWithTarget
// @Failure 401 {object} response.MessageResponse
// @Security CookieAuth
// @Router /subscriptions [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	subs, err := h.repo.ListByUser(c.Request.Context(), principal.ID)
	if err != nil {
		log.Printf("List subscriptions error: %v", err)
		response.InternalServerError(c, "Failed to fetch subscriptions")
		return
	}

	items := make([]SubscriptionWithTarget, 0, len(subs))
	for _, sub := range subs {
		item := SubscriptionWithTarget{Subscription: sub}

		if sub.ReportID != nil {
			if report, err := h.reportsRepo.GetByID(c.Request.Context(), *sub.ReportID); err == nil {
				item.Report = &ReportRef{ID: report.ID, Title: report.Title, Slug: report.Slug}
			}
		}
		if sub.CategoryID != nil {
			if category, err := h.categoriesRepo.GetByID(c.Request.Context(), *sub.CategoryID); err == nil {
				item.Category = &CategoryRef{ID: category.ID, Name: category.Name, Slug: category.Slug}
			}
		}

		items = append(items, item)
	}

	response.OK(c, items)
}

// CreateSubscription subscribes the caller to a report or a category
// @Summary Create a subscription
// @Description Subscribe to exactly one of a report or a category; subscribing twice returns the existing subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param request body CreateSubscriptionRequest true "Subscription target"
// @Success 200 {object} SubscriptionResponse "Already subscribed"
// @Success 201 {object} SubscriptionResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Security CookieAuth
// @Router /subscriptions [post]
func (h *Handler) CreateSubscription(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Must provide either reportId or categoryId, but not both")
		return
	}

	if (req.ReportID == "") == (req.CategoryID == "") {
		response.BadRequest(c, "Must provide either reportId or categoryId, but not both")
		return
	}

	var reportID, categoryID *primitive.ObjectID
	if req.ReportID != "" {
		id, err := primitive.ObjectIDFromHex(req.ReportID)
		if err != nil {
			response.BadRequest(c, "Invalid subscription target")
			return
		}
		reportID = &id
	} else {
		id, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid subscription target")
			return
		}
		categoryID = &id
	}

	// Subscribing twice is not an error; hand back what already exists
	if existing, err := h.repo.FindByTarget(c.Request.Context(), principal.ID, reportID, categoryID); err == nil {
		response.OK(c, SubscriptionResponse{Message: "Already subscribed", Subscription: *existing})
		return
	}

	sub := &Subscription{
		UserID:     principal.ID,
		ReportID:   reportID,
		CategoryID: categoryID,
	}
	if err := h.repo.Create(c.Request.Context(), sub); err != nil {
		// Lost a race against an identical subscription: the unique
		// index caught it, resolve to the same "already" answer.
		if errors.Is(err, ErrAlreadySubscribed) {
			if existing, ferr := h.repo.FindByTarget(c.Request.Context(), principal.ID, reportID, categoryID); ferr == nil {
				response.OK(c, SubscriptionResponse{Message: "Already subscribed", Subscription: *existing})
				return
			}
		}
		log.Printf("Create subscription error: %v", err)
		response.InternalServerError(c, "Failed to create subscription")
		return
	}

	response.Created(c, SubscriptionResponse{Message: "Subscription created successfully", Subscription: *sub})
}

// DeleteSubscription removes one of the caller's subscriptions
// @Summary Delete a subscription
// @Description Delete a subscription by id; responds 404 whether it is absent or owned by someone else
// @Tags subscriptions
// @Produce json
// @Param id query string true "Subscription id"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Security CookieAuth
// @Router /subscriptions [delete]
func (h *Handler) DeleteSubscription(c *gin.Context) {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	raw := c.Query("id")
	if raw == "" {
		response.BadRequest(c, "Subscription ID is required")
		return
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		response.NotFound(c, "Subscription not found")
		return
	}

	if err := h.repo.DeleteOwned(c.Request.Context(), id, principal.ID); err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			response.NotFound(c, "Subscription not found")
			return
		}
		log.Printf("Delete subscription error: %v", err)
		response.InternalServerError(c, "Failed to delete subscription")
		return
	}

	response.Message(c, "Subscription deleted successfully")
}
