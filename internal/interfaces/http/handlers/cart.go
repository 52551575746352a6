// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/interfaces/http/middleware"
	"github.com/pressart/storefront-api/internal/pkg/pdf"
	"github.com/sirupsen/logrus"
)

// CartHandler handles cart endpoints of signed-in users
type CartHandler struct {
	cartService *cart.Service
	pdfService  *pdf.Service
	profiles    ProfileFinder
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, pdfService *pdf.Service, profiles ProfileFinder, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		pdfService:  pdfService,
		profiles:    profiles,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result.ToSummary()})
}

// AddItem handles POST /cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    result.ToSummary(),
	})
}

// UpdateItem handles PUT /cart/update/:itemId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.cartService.UpdateItem(c.Request.Context(), userID, c.Param("itemId"), &req)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    result.ToSummary(),
	})
}

// RemoveItem handles DELETE /cart/remove/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.cartService.RemoveItem(c.Request.Context(), userID, c.Param("itemId"))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to remove item from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    result.ToSummary(),
	})
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.cartService.ClearCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    result.ToSummary(),
	})
}

// Sync handles POST /cart/sync
func (h *CartHandler) Sync(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req cart.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, received, err := h.cartService.SyncLocal(c.Request.Context(), userID, req.LocalCartItems)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to sync cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Cart synced successfully",
		"received": received,
		"data":     result.ToSummary(),
	})
}

// Quote handles GET /cart/quote.pdf
func (h *CartHandler) Quote(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to retrieve cart")
		return
	}

	customer := pdf.Customer{}
	customer.Email, _ = middleware.GetUserEmailFromContext(c)
	if profile, err := h.profiles.GetProfile(c.Request.Context(), userID); err == nil {
		customer.Name = profile.GetDisplayName()
	}

	buf, err := h.pdfService.GenerateQuote(result, customer)
	if errors.Is(err, pdf.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to generate quote PDF")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Quote generation is unavailable"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="pressart-quote.pdf"`)
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
