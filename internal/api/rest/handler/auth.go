package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	restctx "github.com/passkeep/passkeep-server/internal/api/rest/context"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/service"
)

// AuthService defines registration, login and password operations.
type AuthService interface {
	Register(ctx context.Context, params service.RegisterParams) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, actorID uuid.UUID, currentPassword, newPassword, confirmation string) error
	ChangeUserPassword(ctx context.Context, actorID, targetID uuid.UUID, newPassword, confirmation string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Register handles POST /register.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	err := h.authService.Register(c.Request.Context(), service.RegisterParams{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successful registration"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successful login", "token": token})
}

// Logout handles POST /logout. It revokes exactly the token that
// authenticated the request.
func (h *Auth) Logout(c *gin.Context) {
	token, ok := restctx.Token(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

type changePasswordRequest struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ChangePassword handles POST /change-password for the acting user.
func (h *Auth) ChangePassword(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), actorID, req.CurrentPassword, req.Password, req.PasswordConfirmation)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ChangeUserPassword handles POST /change-password/:id, an admin
// setting another user's password.
func (h *Auth) ChangeUserPassword(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrUserNotFound())
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	err = h.authService.ChangeUserPassword(c.Request.Context(), actorID, targetID, req.Password, req.PasswordConfirmation)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully for user ID: " + targetID.String()})
}

// Ping handles GET /ping.
func (h *Auth) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
