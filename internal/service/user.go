package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
)

// User handles the user lifecycle: list, read, update, delete and
// promotion.
type User struct {
	userStore    model.UserStore
	tokenService *TokenService
	logger       *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, tokenService *TokenService, logger *logger.Logger) *User {
	return &User{
		userStore:    userStore,
		tokenService: tokenService,
		logger:       logger,
	}
}

// List returns every user for an admin actor, or only the actor's own
// row otherwise.
func (s *User) List(ctx context.Context, actorID uuid.UUID) ([]model.User, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if actor.IsAdmin() {
		users, err := s.userStore.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return users, nil
	}

	return []model.User{actor}, nil
}

// Get returns a single user, subject to the access policy.
func (s *User) Get(ctx context.Context, actorID, targetID uuid.UUID) (model.User, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return model.User{}, err
	}

	target, err := s.getTarget(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}

	if !canAccess(actor, target.ID) {
		return model.User{}, apierrors.NewErrForbidden()
	}

	return target, nil
}

// Update applies the allow-listed fields to a user. Password and role
// are not mutable through this path.
func (s *User) Update(ctx context.Context, actorID, targetID uuid.UUID, update model.UserUpdate) (model.User, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return model.User{}, err
	}

	target, err := s.getTarget(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}

	if !canAccess(actor, target.ID) {
		return model.User{}, apierrors.NewErrForbidden()
	}

	updated, err := s.userStore.Update(ctx, target.ID, update)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated",
		"user_id", target.ID,
		"actor_id", actor.ID)

	return updated, nil
}

// Delete soft-deletes a user and revokes their sessions. Admin users
// can never be deleted, regardless of who asks.
func (s *User) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return err
	}

	target, err := s.getTarget(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return apierrors.NewErrAdminImmutable()
	}

	if !canAccess(actor, target.ID) {
		return apierrors.NewErrForbidden()
	}

	if err := s.userStore.SoftDelete(ctx, target.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrUserNotFound()
		}
		return fmt.Errorf("failed to soft delete user: %w", err)
	}

	if err := s.tokenService.RevokeAllForUser(ctx, target.ID); err != nil {
		s.logger.Error("User service: failed to revoke sessions of deleted user",
			"user_id", target.ID,
			"error", err.Error())
	}

	s.logger.Info("User service: user deleted",
		"user_id", target.ID,
		"actor_id", actor.ID)

	return nil
}

// Promote grants the target user the admin role. Only admins may
// promote.
func (s *User) Promote(ctx context.Context, actorID, targetID uuid.UUID) error {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return err
	}

	if !actor.IsAdmin() {
		return apierrors.NewErrForbidden()
	}

	target, err := s.getTarget(ctx, targetID)
	if err != nil {
		return err
	}

	if err := s.userStore.UpdateRole(ctx, target.ID, model.RoleAdmin); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrUserNotFound()
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	s.logger.Info("User service: user promoted to admin",
		"user_id", target.ID,
		"actor_id", actor.ID)

	return nil
}

func (s *User) getActor(ctx context.Context, actorID uuid.UUID) (model.User, error) {
	actor, err := s.userStore.GetByID(ctx, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get acting user: %w", err)
	}
	return actor, nil
}

func (s *User) getTarget(ctx context.Context, targetID uuid.UUID) (model.User, error) {
	target, err := s.userStore.GetByID(ctx, targetID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return target, nil
}
