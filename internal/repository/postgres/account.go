package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/passkeep/passkeep-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, name, password, user_id, created_at, updated_at, deleted_at`

// AccountRepository persists accounts in Postgres.
type AccountRepository struct {
	db *Connection
}

// NewAccountRepository creates an AccountRepository on top of db.
func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	err := row.Scan(
		&account.ID, &account.Name, &account.Password, &account.UserID,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, err
	}
	return account, nil
}

func scanAccounts(rows pgx.Rows) ([]model.Account, error) {
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var account model.Account
		err := rows.Scan(
			&account.ID, &account.Name, &account.Password, &account.UserID,
			&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// Create persists a new account and returns the stored row.
func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, name, password, user_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING ` + accountColumns

	savedAccount, err := scanAccount(r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Password, account.UserID,
	))
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return savedAccount, nil
}

// GetByID returns the active account with the given id.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND deleted_at IS NULL`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

// List returns every active account.
func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return scanAccounts(rows)
}

// ListByUserID returns the active accounts owned by userID.
func (r *AccountRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by user id: %w", err)
	}

	return scanAccounts(rows)
}

// Update applies the allow-listed fields and returns the updated row.
func (r *AccountRepository) Update(ctx context.Context, id uuid.UUID, update model.AccountUpdate) (model.Account, error) {
	query := `UPDATE accounts
			  SET name = COALESCE($2, name), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, update.Name))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Account{}, err
		}
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}

	return account, nil
}

// UpdatePassword replaces the stored ciphertext.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string) error {
	const query = `UPDATE accounts SET password = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	cmd, err := r.db.Exec(ctx, query, id, password)
	if err != nil {
		return fmt.Errorf("failed to update account password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// SoftDelete marks the account deleted.
func (r *AccountRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE accounts SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete account: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
