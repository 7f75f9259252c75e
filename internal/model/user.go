package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is a user's access level.
type Role string

const (
	// RoleMember is the default role assigned at registration.
	RoleMember Role = "member"
	// RoleAdmin grants access to every user and account row.
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role Role) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// User represents a registered user.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserUpdate is the allow-list of user fields mutable through the
// generic update path. Password and role deliberately have dedicated
// operations and are absent here.
type UserUpdate struct {
	Name  *string
	Email *string
}
