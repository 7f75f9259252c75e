package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	restctx "github.com/passkeep/passkeep-server/internal/api/rest/context"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
)

// UserService defines user lifecycle operations.
type UserService interface {
	List(ctx context.Context, actorID uuid.UUID) ([]model.User, error)
	Get(ctx context.Context, actorID, targetID uuid.UUID) (model.User, error)
	Update(ctx context.Context, actorID, targetID uuid.UUID, update model.UserUpdate) (model.User, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
	Promote(ctx context.Context, actorID, targetID uuid.UUID) error
}

// User handles HTTP endpoints for user management.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// List handles GET /users.
func (h *User) List(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	users, err := h.userService.List(c.Request.Context(), actorID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
func (h *User) Get(c *gin.Context) {
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

	user, err := h.userService.Get(c.Request.Context(), actorID, targetID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Update handles PUT /users/:id. Only name and email are mutable here.
func (h *User) Update(c *gin.Context) {
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

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actorID, targetID, model.UserUpdate{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
func (h *User) Delete(c *gin.Context) {
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

	if err := h.userService.Delete(c.Request.Context(), actorID, targetID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// MakeAdmin handles POST /users/:id/make-admin.
func (h *User) MakeAdmin(c *gin.Context) {
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

	if err := h.userService.Promote(c.Request.Context(), actorID, targetID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User is now an admin"})
}
