package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	Create(ctx context.Context, account Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	List(ctx context.Context) ([]Account, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]Account, error)
	Update(ctx context.Context, id uuid.UUID, update AccountUpdate) (Account, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Account is a stored credential entry owned by a user. Password holds
// the ciphertext at rest; services swap in the decrypted value before
// returning the entity to the transport layer.
type Account struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Password  string     `json:"password"`
	UserID    uuid.UUID  `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// AccountUpdate is the allow-list of account fields mutable through the
// generic update path. The password changes only via the reset flow.
type AccountUpdate struct {
	Name *string
}
