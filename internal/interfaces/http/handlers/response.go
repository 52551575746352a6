// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/domain/assistant"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/sirupsen/logrus"
)

// respondBindError reports an invalid request body
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// respondServiceError maps domain errors to HTTP responses. Unknown errors
// are logged and hidden behind fallback.
func respondServiceError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var notice *assistant.Notice
	switch {
	case errors.As(err, &notice):
		status := http.StatusUnprocessableEntity
		if notice == assistant.ErrLineNotFound || notice == assistant.ErrImageNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": notice.Message})
	case errors.Is(err, assistant.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrCartNotFound), errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrInvalidSize), errors.Is(err, cart.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.WithError(err).WithField("path", c.FullPath()).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
