package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	restctx "github.com/passkeep/passkeep-server/internal/api/rest/context"
	"github.com/passkeep/passkeep-server/internal/logger"
)

// TokenService resolves user IDs from bearer tokens.
type TokenService interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate validates bearer tokens and injects the user ID into the
// request context.
type Authenticate struct {
	tokenService TokenService
	logger       *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, logger: logger}
}

// Handle parses the Authorization header, validates the token and
// stores the user ID and the raw token on the context. Requests without
// a valid token are rejected with 401.
func (m *Authenticate) Handle(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(header, "Bearer ")

	if header == "" || tokenString == header {
		err := apierrors.NewErrMissingAuthorizationToken()
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Message})
		return
	}

	userID, err := m.tokenService.Resolve(c.Request.Context(), tokenString)
	if err != nil || userID == uuid.Nil {
		m.logger.Debug("Authenticate middleware: token rejected",
			"path", c.FullPath())
		authErr := apierrors.NewErrInvalidAuthorizationToken()
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": authErr.Message})
		return
	}

	restctx.SetUserID(c, userID)
	restctx.SetToken(c, tokenString)
	c.Next()
}
