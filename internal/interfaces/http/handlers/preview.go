// internal/interfaces/http/handlers/preview.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/domain/preview"
)

// PreviewHandler resolves item codes to preview images
type PreviewHandler struct {
	resolver *preview.Resolver
}

// NewPreviewHandler creates a new preview handler
func NewPreviewHandler(resolver *preview.Resolver) *PreviewHandler {
	return &PreviewHandler{resolver: resolver}
}

// Resolve handles GET /preview/:code
func (h *PreviewHandler) Resolve(c *gin.Context) {
	image, err := h.resolver.Resolve(c.Param("code"))
	if errors.Is(err, preview.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Image not found for this item code",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": image})
}

// ResolveBatch handles POST /preview/batch
func (h *PreviewHandler) ResolveBatch(c *gin.Context) {
	var req struct {
		Codes []string `json:"codes" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	images, missing := h.resolver.ResolveAll(req.Codes)
	if missing == nil {
		missing = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    images,
		"missing": missing,
	})
}

// Categories handles GET /preview/categories
func (h *PreviewHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.resolver.Categories()})
}
