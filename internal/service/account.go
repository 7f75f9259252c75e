package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	"github.com/passkeep/passkeep-server/internal/logger"
	"github.com/passkeep/passkeep-server/internal/model"
	"github.com/passkeep/passkeep-server/internal/secret"
)

const (
	maxAccountNameLength = 255
	minAccountPassword   = 6
)

// Account handles the credential-entry lifecycle. Stored passwords are
// ciphertext; read paths return them decrypted, create returns the row
// as persisted.
type Account struct {
	accountStore model.AccountStore
	userStore    model.UserStore
	codec        *secret.Codec
	logger       *logger.Logger
}

// NewAccount creates a new Account service.
func NewAccount(
	accountStore model.AccountStore,
	userStore model.UserStore,
	codec *secret.Codec,
	logger *logger.Logger,
) *Account {
	return &Account{
		accountStore: accountStore,
		userStore:    userStore,
		codec:        codec,
		logger:       logger,
	}
}

// CreateAccountParams contains account creation input.
type CreateAccountParams struct {
	Name                 string
	Password             string
	PasswordConfirmation string
}

// List returns every account for an admin actor, or the actor's own
// accounts otherwise, with passwords decrypted. An empty result is
// reported as not found.
func (s *Account) List(ctx context.Context, actorID uuid.UUID) ([]model.Account, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var accounts []model.Account
	if actor.IsAdmin() {
		accounts, err = s.accountStore.List(ctx)
	} else {
		accounts, err = s.accountStore.ListByUserID(ctx, actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, apierrors.NewErrNoAccountsFound()
	}

	for i := range accounts {
		plain, err := s.codec.Decrypt(accounts[i].Password)
		if err != nil {
			s.logger.Error("Account service: failed to decrypt account password",
				"account_id", accounts[i].ID,
				"error", err.Error())
			return nil, err
		}
		accounts[i].Password = plain
	}

	return accounts, nil
}

// Get returns a single account with its password decrypted, subject to
// the access policy.
func (s *Account) Get(ctx context.Context, actorID, accountID uuid.UUID) (model.Account, error) {
	_, account, err := s.authorize(ctx, actorID, accountID)
	if err != nil {
		return model.Account{}, err
	}

	plain, err := s.codec.Decrypt(account.Password)
	if err != nil {
		s.logger.Error("Account service: failed to decrypt account password",
			"account_id", account.ID,
			"error", err.Error())
		return model.Account{}, err
	}
	account.Password = plain

	return account, nil
}

// Create validates params, encrypts the password and persists the
// account with the actor as owner. The returned row carries the
// ciphertext password, matching what was stored.
func (s *Account) Create(ctx context.Context, actorID uuid.UUID, params CreateAccountParams) (model.Account, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return model.Account{}, err
	}

	if params.Name == "" {
		return model.Account{}, apierrors.NewErrValidation("The name field is required.")
	}
	if len(params.Name) > maxAccountNameLength {
		return model.Account{}, apierrors.NewErrValidation("The name may not be greater than 255 characters.")
	}
	if err := validateAccountPassword(params.Password, params.PasswordConfirmation); err != nil {
		return model.Account{}, err
	}

	ciphertext, err := s.codec.Encrypt(params.Password)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to encrypt password: %w", err)
	}

	account := model.Account{
		ID:       uuid.New(),
		Name:     params.Name,
		Password: ciphertext,
		UserID:   actor.ID,
	}

	saved, err := s.accountStore.Create(ctx, account)
	if err != nil {
		s.logger.Error("Account service: failed to create account",
			"user_id", actor.ID,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Account service: account created",
		"account_id", saved.ID,
		"user_id", actor.ID)

	return saved, nil
}

// Update applies the allow-listed fields. The password never changes
// through this path; the updated row is returned with the password
// decrypted.
func (s *Account) Update(ctx context.Context, actorID, accountID uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	actor, account, err := s.authorize(ctx, actorID, accountID)
	if err != nil {
		return model.Account{}, err
	}

	updated, err := s.accountStore.Update(ctx, account.ID, update)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierrors.NewErrAccountNotFound()
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	plain, err := s.codec.Decrypt(updated.Password)
	if err != nil {
		return model.Account{}, err
	}
	updated.Password = plain

	s.logger.Info("Account service: account updated",
		"account_id", account.ID,
		"actor_id", actor.ID)

	return updated, nil
}

// ResetPassword replaces the account's stored secret. The new password
// must differ from the current one.
func (s *Account) ResetPassword(ctx context.Context, actorID, accountID uuid.UUID, newPassword, confirmation string) error {
	actor, account, err := s.authorize(ctx, actorID, accountID)
	if err != nil {
		return err
	}

	if err := validateAccountPassword(newPassword, confirmation); err != nil {
		return err
	}

	current, err := s.codec.Decrypt(account.Password)
	if err != nil {
		s.logger.Error("Account service: failed to decrypt account password",
			"account_id", account.ID,
			"error", err.Error())
		return err
	}

	if newPassword == current {
		return apierrors.NewErrSamePassword()
	}

	ciphertext, err := s.codec.Encrypt(newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}

	if err := s.accountStore.UpdatePassword(ctx, account.ID, ciphertext); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrAccountNotFound()
		}
		return fmt.Errorf("failed to update account password: %w", err)
	}

	s.logger.Info("Account service: account password reset",
		"account_id", account.ID,
		"actor_id", actor.ID)

	return nil
}

// Delete soft-deletes an account.
func (s *Account) Delete(ctx context.Context, actorID, accountID uuid.UUID) error {
	actor, account, err := s.authorize(ctx, actorID, accountID)
	if err != nil {
		return err
	}

	if err := s.accountStore.SoftDelete(ctx, account.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrAccountNotFound()
		}
		return fmt.Errorf("failed to soft delete account: %w", err)
	}

	s.logger.Info("Account service: account deleted",
		"account_id", account.ID,
		"actor_id", actor.ID)

	return nil
}

// authorize loads the actor and the target account and applies the
// access policy.
func (s *Account) authorize(ctx context.Context, actorID, accountID uuid.UUID) (model.User, model.Account, error) {
	actor, err := s.getActor(ctx, actorID)
	if err != nil {
		return model.User{}, model.Account{}, err
	}

	account, err := s.accountStore.GetByID(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Account{}, apierrors.NewErrAccountNotFound()
	}
	if err != nil {
		return model.User{}, model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	if !canAccess(actor, account.UserID) {
		return model.User{}, model.Account{}, apierrors.NewErrForbidden()
	}

	return actor, account, nil
}

func (s *Account) getActor(ctx context.Context, actorID uuid.UUID) (model.User, error) {
	actor, err := s.userStore.GetByID(ctx, actorID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get acting user: %w", err)
	}
	return actor, nil
}

func validateAccountPassword(password, confirmation string) error {
	if password == "" {
		return apierrors.NewErrValidation("The password field is required.")
	}
	if len(password) < minAccountPassword {
		return apierrors.NewErrValidation("The password must be at least 6 characters.")
	}
	if password != confirmation {
		return apierrors.NewErrPasswordMismatch()
	}
	return nil
}
