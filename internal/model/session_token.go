package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager generates and validates bearer tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (token string, jti string, err error)
	Parse(token string) (userID uuid.UUID, jti string, err error)
}

// SessionTokenStore persists issued bearer tokens so they can be
// revoked before their cryptographic expiry.
type SessionTokenStore interface {
	// Replace atomically revokes every live token of token.UserID and
	// inserts the new row. Concurrent logins for the same user must not
	// leave two live tokens behind.
	Replace(ctx context.Context, token SessionToken) error
	GetByJTI(ctx context.Context, jti string) (SessionToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// SessionToken is the stored side of an issued bearer token.
type SessionToken struct {
	ID        uuid.UUID
	JTI       string
	UserID    uuid.UUID
	TokenHash []byte
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
