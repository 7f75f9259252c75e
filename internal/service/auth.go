package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
	"github.com/passkeep/passkeep-server/internal/secret"
)

// Auth handles registration, login and password changes.
type Auth struct {
	userStore    model.UserStore
	tokenService *TokenService
	codec        *secret.Codec
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	tokenService *TokenService,
	codec *secret.Codec,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenService: tokenService,
		codec:        codec,
		logger:       logger,
	}
}

// RegisterParams contains registration input.
type RegisterParams struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Register validates params and persists a new member user with a
// hashed password.
func (a *Auth) Register(ctx context.Context, params RegisterParams) error {
	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if params.Name == "" {
		return apierrors.NewErrValidation("The name field is required.")
	}
	if params.Email == "" {
		return apierrors.NewErrValidation("The email field is required.")
	}
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return apierrors.NewErrValidation("The email must be a valid email address.")
	}
	if params.Password == "" {
		return apierrors.NewErrValidation("The password field is required.")
	}
	if params.Password != params.PasswordConfirmation {
		return apierrors.NewErrPasswordMismatch()
	}

	existingUser, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"email", params.Email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if existingUser.ID != uuid.Nil {
		a.logger.Info("Auth service: email already registered",
			"email", params.Email)
		return apierrors.NewErrEmailTaken()
	}

	passwordHash, err := a.codec.HashPassword(params.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleMember,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := a.userStore.Create(ctx, user); err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", params.Email,
		"user_id", user.ID)

	return nil
}

// Login verifies credentials and issues a bearer token. Issuing the
// token invalidates any previously issued token for the same user.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: starting login",
		"email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.codec.VerifyPassword(password, user.PasswordHash) {
		a.logger.Info("Auth service: wrong password",
			"email", email)
		return "", apierrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed",
		"email", email,
		"user_id", user.ID)

	return token, nil
}

// Logout revokes the presented token.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if err := a.tokenService.Revoke(ctx, token); err != nil {
		return apierrors.NewErrInvalidAuthorizationToken()
	}
	return nil
}

// ChangePassword changes the acting user's own password after
// verifying the current one.
func (a *Auth) ChangePassword(ctx context.Context, actorID uuid.UUID, currentPassword, newPassword, confirmation string) error {
	actor, err := a.getActor(ctx, actorID)
	if err != nil {
		return err
	}

	if currentPassword == "" || newPassword == "" {
		return apierrors.NewErrValidation("The password field is required.")
	}
	if newPassword != confirmation {
		return apierrors.NewErrPasswordMismatch()
	}

	if !a.codec.VerifyPassword(currentPassword, actor.PasswordHash) {
		return apierrors.NewErrWrongPassword()
	}

	passwordHash, err := a.codec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePasswordHash(ctx, actor.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", actor.ID)

	return nil
}

// ChangeUserPassword lets an admin set another user's password. The
// target's sessions are revoked afterwards.
func (a *Auth) ChangeUserPassword(ctx context.Context, actorID, targetID uuid.UUID, newPassword, confirmation string) error {
	actor, err := a.getActor(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := a.userStore.GetByID(ctx, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !actor.IsAdmin() {
		return apierrors.NewErrForbidden()
	}

	if newPassword == "" {
		return apierrors.NewErrValidation("The password field is required.")
	}
	if newPassword != confirmation {
		return apierrors.NewErrPasswordMismatch()
	}

	passwordHash, err := a.codec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userStore.UpdatePasswordHash(ctx, target.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	if err := a.tokenService.RevokeAllForUser(ctx, target.ID); err != nil {
		a.logger.Error("Auth service: failed to revoke target sessions",
			"user_id", target.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: password changed by admin",
		"user_id", target.ID,
		"actor_id", actor.ID)

	return nil
}

func (a *Auth) getActor(ctx context.Context, actorID uuid.UUID) (model.User, error) {
	actor, err := a.userStore.GetByID(ctx, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get acting user: %w", err)
	}
	return actor, nil
}
