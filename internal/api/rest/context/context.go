// Package context stores and retrieves per-request identity values on
// the gin context.
package context

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey = "user_id"
	tokenKey  = "bearer_token"
)

// SetUserID stores the authenticated user's ID on the request context.
func SetUserID(c *gin.Context, userID uuid.UUID) {
	c.Set(userIDKey, userID)
}

// UserID returns the authenticated user's ID, if the authenticate
// middleware ran for this request.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetToken stores the presented bearer token on the request context so
// logout can revoke exactly the token that authenticated the request.
func SetToken(c *gin.Context, token string) {
	c.Set(tokenKey, token)
}

// Token returns the presented bearer token.
func Token(c *gin.Context) (string, bool) {
	v, ok := c.Get(tokenKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
