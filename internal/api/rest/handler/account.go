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
	"github.com/passkeep/passkeep-server/internal/service"
)

// AccountService defines credential-entry lifecycle operations.
type AccountService interface {
	List(ctx context.Context, actorID uuid.UUID) ([]model.Account, error)
	Get(ctx context.Context, actorID, accountID uuid.UUID) (model.Account, error)
	Create(ctx context.Context, actorID uuid.UUID, params service.CreateAccountParams) (model.Account, error)
	Update(ctx context.Context, actorID, accountID uuid.UUID, update model.AccountUpdate) (model.Account, error)
	ResetPassword(ctx context.Context, actorID, accountID uuid.UUID, newPassword, confirmation string) error
	Delete(ctx context.Context, actorID, accountID uuid.UUID) error
}

// Account handles HTTP endpoints for credential entries.
type Account struct {
	accountService AccountService
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(accountService AccountService, logger *logger.Logger) *Account {
	return &Account{
		accountService: accountService,
		logger:         logger,
	}
}

// List handles GET /accounts. Passwords in the response are decrypted.
func (h *Account) List(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	accounts, err := h.accountService.List(c.Request.Context(), actorID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// Get handles GET /accounts/:id.
func (h *Account) Get(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrAccountNotFound())
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), actorID, accountID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

type createAccountRequest struct {
	Name                 string `json:"name"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Create handles POST /accounts. The created row is returned with its
// password still encrypted, unlike the read paths.
func (h *Account) Create(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), actorID, service.CreateAccountParams{
		Name:                 req.Name,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

type updateAccountRequest struct {
	Name *string `json:"name"`
}

// Update handles PUT /accounts/:id. The password field is not mutable
// here; resets go through the dedicated endpoint.
func (h *Account) Update(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrAccountNotFound())
		return
	}

	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), actorID, accountID, model.AccountUpdate{
		Name: req.Name,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

type resetPasswordRequest struct {
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ResetPassword handles PUT /account/reset-password/:id.
func (h *Account) ResetPassword(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrAccountNotFound())
		return
	}

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, apierrors.NewErrValidation("invalid request body"))
		return
	}

	err = h.accountService.ResetPassword(c.Request.Context(), actorID, accountID, req.Password, req.PasswordConfirmation)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Delete handles DELETE /accounts/:id.
func (h *Account) Delete(c *gin.Context) {
	actorID, ok := restctx.UserID(c)
	if !ok {
		handleError(c, apierrors.NewErrMissingAuthorizationToken())
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleError(c, apierrors.NewErrAccountNotFound())
		return
	}

	if err := h.accountService.Delete(c.Request.Context(), actorID, accountID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account successfully deleted"})
}
