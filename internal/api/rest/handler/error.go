package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/passkeep/passkeep-server/internal/apierrors"
	"github.com/passkeep/passkeep-server/internal/model"
)

// handleError maps service errors to HTTP responses. Typed API errors
// carry their own status; sentinel not-found maps to 404; anything else
// is a generic 500 so internals never leak.
func handleError(c *gin.Context, err error) {
	if apiErr, ok := apierrors.AsAPIError(err); ok {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"message": apiErr.Message})
		return
	}

	if errors.Is(err, model.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}
