// internal/interfaces/http/handlers/assistant.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/assistant"
	"github.com/pressart/storefront-api/internal/domain/checkout"
	"github.com/pressart/storefront-api/internal/domain/user"
	"github.com/pressart/storefront-api/internal/domain/widget"
	"github.com/pressart/storefront-api/internal/interfaces/http/middleware"
	"github.com/sirupsen/logrus"
)

// ProfileFinder loads the signed-in user
type ProfileFinder interface {
	GetProfile(ctx context.Context, userID uint) (*user.User, error)
}

// AssistantHandler serves the floating checkout assistant
type AssistantHandler struct {
	assistant *assistant.Service
	checkout  *checkout.Service
	profiles  ProfileFinder
	layout    widget.Options
	config    *config.Config
	logger    *logrus.Logger
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(svc *assistant.Service, checkoutService *checkout.Service, profiles ProfileFinder, cfg *config.Config, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{
		assistant: svc,
		checkout:  checkoutService,
		profiles:  profiles,
		layout:    widget.OptionsFromConfig(cfg.Widget),
		config:    cfg,
		logger:    logger,
	}
}

type pasteRequest struct {
	Text string `json:"text"`
}

type sizeRequest struct {
	Size string `json:"size" binding:"required"`
}

type quantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetState handles GET /assistant
func (h *AssistantHandler) GetState(c *gin.Context) {
	session, err := h.assistant.Get(c.Request.Context(), h.sessionID(c))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to load assistant")
		return
	}
	h.respond(c, session, "")
}

// Paste handles POST /assistant/paste
func (h *AssistantHandler) Paste(c *gin.Context) {
	var req pasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.assistant.Paste(c.Request.Context(), h.sessionID(c), req.Text)
	h.reply(c, session, err, "")
}

// SelectSize handles POST /assistant/size
func (h *AssistantHandler) SelectSize(c *gin.Context) {
	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.assistant.SelectSize(c.Request.Context(), h.sessionID(c), req.Size)
	h.reply(c, session, err, "")
}

// SelectQuantity handles POST /assistant/quantity
func (h *AssistantHandler) SelectQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	session, err := h.assistant.SelectQuantity(c.Request.Context(), h.sessionID(c), req.Quantity)
	h.reply(c, session, err, "")
}

// Add handles POST /assistant/add
func (h *AssistantHandler) Add(c *gin.Context) {
	session, _, err := h.assistant.Add(c.Request.Context(), h.sessionID(c))
	h.reply(c, session, err, assistant.MsgAdded)
}

// StartEdit handles POST /assistant/edit/:lineId
func (h *AssistantHandler) StartEdit(c *gin.Context) {
	session, err := h.assistant.StartEdit(c.Request.Context(), h.sessionID(c), c.Param("lineId"))
	h.reply(c, session, err, "")
}

// SaveEdit handles POST /assistant/edit/save
func (h *AssistantHandler) SaveEdit(c *gin.Context) {
	session, err := h.assistant.SaveEdit(c.Request.Context(), h.sessionID(c))
	h.reply(c, session, err, assistant.MsgUpdated)
}

// CancelEdit handles POST /assistant/edit/cancel
func (h *AssistantHandler) CancelEdit(c *gin.Context) {
	session, err := h.assistant.CancelEdit(c.Request.Context(), h.sessionID(c))
	h.reply(c, session, err, "")
}

// RemoveLine handles DELETE /assistant/lines/:lineId
func (h *AssistantHandler) RemoveLine(c *gin.Context) {
	session, err := h.assistant.Remove(c.Request.Context(), h.sessionID(c), c.Param("lineId"))
	h.reply(c, session, err, assistant.MsgRemoved)
}

// PreviewLine handles GET /assistant/preview/:lineId
func (h *AssistantHandler) PreviewLine(c *gin.Context) {
	image, err := h.assistant.PreviewLine(c.Request.Context(), h.sessionID(c), c.Param("lineId"))
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to load preview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": image})
}

// Checkout handles POST /assistant/checkout
func (h *AssistantHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to checkout"})
		return
	}

	customer := checkout.Customer{ID: userID}
	customer.Email, _ = middleware.GetUserEmailFromContext(c)
	if profile, err := h.profiles.GetProfile(c.Request.Context(), userID); err == nil {
		customer.Name = profile.GetDisplayName()
		customer.Email = profile.Email
	}

	result, err := h.checkout.Checkout(c.Request.Context(), h.sessionID(c), customer)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    result,
	})
}

// Layout handles POST /assistant/layout
func (h *AssistantHandler) Layout(c *gin.Context) {
	var req widget.LayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Viewport.Width <= 0 || req.Viewport.Height <= 0 {
		req.Viewport = widget.Size{Width: h.config.Widget.DefaultWidth, Height: h.config.Widget.DefaultHeight}
	}

	c.JSON(http.StatusOK, gin.H{"data": h.layout.Compute(req)})
}

func (h *AssistantHandler) reply(c *gin.Context, session *assistant.Session, err error, message string) {
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to update assistant")
		return
	}
	h.respond(c, session, message)
}

func (h *AssistantHandler) respond(c *gin.Context, session *assistant.Session, message string) {
	body := gin.H{
		"data": gin.H{
			"session":     session,
			"sizes":       assistant.SizeOptions,
			"maxQuantity": h.assistant.MaxQuantity(),
		},
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// sessionID returns the assistant session cookie, issuing a new one when absent
func (h *AssistantHandler) sessionID(c *gin.Context) string {
	name := h.config.Session.CookieName
	sessionID, err := c.Cookie(name)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, sessionID, int(h.config.Session.TTL.Seconds()), "/", "", h.config.Session.Secure, true)
	}
	return sessionID
}
