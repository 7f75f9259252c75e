package service

import (
	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/model"
)

// canAccess is the single row-level authorization rule: an actor may
// read or mutate a row when they are an admin or when they own it.
// Callers convert a false result into a Forbidden error.
func canAccess(actor model.User, ownerID uuid.UUID) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}
