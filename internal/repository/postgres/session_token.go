package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/passkeep/passkeep-server/internal/model"
)

var _ model.SessionTokenStore = (*SessionTokenRepository)(nil)

// SessionTokenRepository persists issued bearer tokens in Postgres.
type SessionTokenRepository struct {
	db *Connection
}

// NewSessionTokenRepository creates a SessionTokenRepository on top of db.
func NewSessionTokenRepository(db *Connection) *SessionTokenRepository {
	return &SessionTokenRepository{db: db}
}

// Replace revokes every live token of token.UserID and inserts the new
// row in a single transaction, so a login concurrent with another login
// for the same user cannot leave two live sessions.
func (r *SessionTokenRepository) Replace(ctx context.Context, token model.SessionToken) error {
	const revokeQuery = `
        UPDATE session_tokens SET revoked_at = NOW(), updated_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL
    `
	const insertQuery = `
        INSERT INTO session_tokens (
            id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, revokeQuery, token.UserID); err != nil {
		return fmt.Errorf("failed to revoke previous session tokens: %w", err)
	}

	_, err = tx.Exec(ctx, insertQuery,
		token.ID, token.JTI, token.UserID, token.TokenHash, token.IssuedAt, token.ExpiresAt,
		token.RevokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit session token replace: %w", err)
	}
	return nil
}

// GetByJTI returns the stored token with the given JTI.
func (r *SessionTokenRepository) GetByJTI(ctx context.Context, jti string) (model.SessionToken, error) {
	const query = `
        SELECT id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, created_at, updated_at
        FROM session_tokens WHERE jti = $1
    `
	var st model.SessionToken
	err := r.db.QueryRow(ctx, query, jti).Scan(
		&st.ID, &st.JTI, &st.UserID, &st.TokenHash, &st.IssuedAt, &st.ExpiresAt,
		&st.RevokedAt, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SessionToken{}, model.ErrNotFound
		}
		return model.SessionToken{}, fmt.Errorf("failed to get session token by jti: %w", err)
	}
	return st, nil
}

// RevokeByJTI revokes the token with the given JTI. Idempotent.
func (r *SessionTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	const query = `
        UPDATE session_tokens SET revoked_at = NOW(), updated_at = NOW()
        WHERE jti = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, jti); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}

// RevokeAllByUser revokes every live token of userID.
func (r *SessionTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
        UPDATE session_tokens SET revoked_at = NOW(), updated_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to revoke session tokens by user: %w", err)
	}
	return nil
}
