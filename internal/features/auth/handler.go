package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/postmortem/internal/config"
	"github.com/xyz-asif/postmortem/internal/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	repo   *Repository
	config *config.Config
}

// NewHandler creates a new auth handler
func NewHandler(repo *Repository, cfg *config.Config) *Handler {
	return &Handler{
		repo:   repo,
		config: cfg,
	}
}

// Register creates a new account and logs it in
// @Summary Register a new account
// @Description Create an account with email and password, setting the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} response.MessageResponse
// @Failure 409 {object} response.MessageResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Valid email and password (minimum 8 characters) required")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if !ValidRegistration(req.Email, req.Password) {
		response.BadRequest(c, "Valid email and password (minimum 8 characters) required")
		return
	}

	// Pre-check for a friendlier error; the unique index still backs
	// this up if two registrations race.
	if _, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		response.Conflict(c, "Email already in use")
		return
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		log.Printf("Registration error: %v", err)
		response.InternalServerError(c, "Registration failed")
		return
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		JobTitle:     req.JobTitle,
		FieldOfStudy: req.FieldOfStudy,
	}

	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, "Email already in use")
			return
		}
		log.Printf("Registration error: %v", err)
		response.InternalServerError(c, "Registration failed")
		return
	}

	token, err := GenerateToken(user.ID.Hex(), h.config.JWTSecret)
	if err != nil {
		log.Printf("Registration error: %v", err)
		response.InternalServerError(c, "Registration failed")
		return
	}
	SetAuthCookie(c, token, h.config.IsProduction())

	resp := RegisterResponse{Message: "Account created successfully"}
	resp.User.ID = user.ID
	resp.User.CreatedAt = user.CreatedAt
	response.Created(c, resp)
}

// Login verifies credentials and starts a session
// @Summary Log in
// @Description Verify email and password and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} response.MessageResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	// A missing user and a wrong password answer identically so the
	// endpoint cannot be used to probe which emails are registered.
	user, err := h.repo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		log.Printf("Login error: %v", err)
		response.InternalServerError(c, "Login failed")
		return
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := GenerateToken(user.ID.Hex(), h.config.JWTSecret)
	if err != nil {
		log.Printf("Login error: %v", err)
		response.InternalServerError(c, "Login failed")
		return
	}
	SetAuthCookie(c, token, h.config.IsProduction())

	resp := LoginResponse{Message: "Login successful"}
	resp.User.ID = user.ID
	response.OK(c, resp)
}

// Logout ends the session
// @Summary Log out
// @Description Clear the session cookie (idempotent)
// @Tags auth
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	ClearAuthCookie(c, h.config.IsProduction())
	response.Message(c, "Logged out successfully")
}

// Me reports the current session state
// @Summary Current session
// @Description Return the authenticated principal, or 401 with authenticated=false
// @Tags auth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} MeResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(401, MeResponse{Authenticated: false})
		return
	}

	response.OK(c, MeResponse{Authenticated: true, User: principal})
}
