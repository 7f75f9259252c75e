package model

import "errors"

var (
	// ErrNotFound is returned by stores when the target row is absent
	// or soft-deleted.
	ErrNotFound = errors.New("not found")

	ErrTokenRevoked  = errors.New("session token revoked")
	ErrTokenExpired  = errors.New("session token expired")
	ErrTokenMismatch = errors.New("session token mismatch")
)
