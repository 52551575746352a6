// internal/interfaces/http/routes/routes.go
package routes

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/assistant"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/checkout"
	"github.com/pressart/storefront-api/internal/domain/preview"
	"github.com/pressart/storefront-api/internal/domain/pricing"
	"github.com/pressart/storefront-api/internal/domain/user"
	"github.com/pressart/storefront-api/internal/infrastructure/database/postgres"
	redisdb "github.com/pressart/storefront-api/internal/infrastructure/database/redis"
	"github.com/pressart/storefront-api/internal/interfaces/http/handlers"
	"github.com/pressart/storefront-api/internal/interfaces/http/middleware"
	"github.com/pressart/storefront-api/internal/pkg/auth"
	"github.com/pressart/storefront-api/internal/pkg/email"
	"github.com/pressart/storefront-api/internal/pkg/notify"
	"github.com/pressart/storefront-api/internal/pkg/pdf"
	"github.com/sirupsen/logrus"
)

// Dependencies holds the services the routes are built from
type Dependencies struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DB        *postgres.DB
	Redis     *redisdb.Client
	JWT       *auth.JWTManager
	Denylist  *auth.Denylist
	Resolver  *preview.Resolver
	Assistant *assistant.Service
	Cart      *cart.Service
	Users     *user.Service
	Checkout  *checkout.Service
	PDF       *pdf.Service
}

// NewDependencies wires every service on top of the database and Redis
func NewDependencies(ctx context.Context, cfg *config.Config, db *postgres.DB, redisClient *redisdb.Client, logger *logrus.Logger) (*Dependencies, error) {
	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.NewFromConfig(cfg.External.Telegram, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram notifier: %w", err)
	}
	if !notifier.Enabled() {
		log.Println("⚠️ TELEGRAM_BOT_TOKEN not set, shop alerts disabled")
	}

	prices := pricing.NewBook(cfg.Pricing)
	resolver := preview.NewResolver(cfg.Assets.URLPrefix)
	jwtManager := auth.NewJWTManager(cfg)
	denylist := auth.NewDenylist(redisClient)

	assistantService := assistant.NewService(
		assistant.NewRedisStore(redisClient, cfg.Session.TTL),
		resolver,
		logger,
		cfg,
	)
	cartService := cart.NewService(cart.NewRepository(db.GetDB()), prices, logger)
	userService := user.NewService(db.GetDB(), verifier, jwtManager, denylist, logger)
	checkoutService := checkout.NewService(
		assistantService,
		cartService,
		prices,
		resolver,
		email.NewEmailService(cfg),
		notifier,
		cfg.App.FrontendURL,
		logger,
	)

	return &Dependencies{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Redis:     redisClient,
		JWT:       jwtManager,
		Denylist:  denylist,
		Resolver:  resolver,
		Assistant: assistantService,
		Cart:      cartService,
		Users:     userService,
		Checkout:  checkoutService,
		PDF:       pdf.NewService(cfg, prices),
	}, nil
}

func newVerifier(ctx context.Context, cfg *config.Config) (auth.IdentityVerifier, error) {
	if cfg.Google.ClientID != "" {
		verifier, err := auth.NewGoogleVerifier(ctx, cfg.Google.ClientID)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google verifier: %w", err)
		}
		return verifier, nil
	}
	if cfg.Google.TrustClientProfile {
		log.Println("⚠️ GOOGLE_TRUST_CLIENT_PROFILE enabled, Google tokens are not verified")
		return auth.TrustedProfileVerifier{}, nil
	}
	return nil, fmt.Errorf("GOOGLE_CLIENT_ID is required")
}

// SetupRoutes registers all API v1 routes
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	SetupPreviewRoutes(rg, deps)
	SetupAssistantRoutes(rg, deps)
	SetupAuthRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
}

// SetupPreviewRoutes sets up item code preview routes
func SetupPreviewRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	previewHandler := handlers.NewPreviewHandler(deps.Resolver)

	previews := rg.Group("/preview")
	{
		previews.GET("/categories", previewHandler.Categories)
		previews.POST("/batch", previewHandler.ResolveBatch)
		previews.GET("/:code", previewHandler.Resolve)
	}
}

// SetupAssistantRoutes sets up the floating checkout assistant routes
func SetupAssistantRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	assistantHandler := handlers.NewAssistantHandler(deps.Assistant, deps.Checkout, deps.Users, deps.Config, deps.Logger)

	a := rg.Group("/assistant")
	a.Use(middleware.OptionalAuthMiddleware(deps.JWT, deps.Denylist))
	{
		a.GET("", assistantHandler.GetState)
		a.POST("/paste", assistantHandler.Paste)
		a.POST("/size", assistantHandler.SelectSize)
		a.POST("/quantity", assistantHandler.SelectQuantity)
		a.POST("/add", assistantHandler.Add)
		a.POST("/edit/save", assistantHandler.SaveEdit)
		a.POST("/edit/cancel", assistantHandler.CancelEdit)
		a.POST("/edit/:lineId", assistantHandler.StartEdit)
		a.DELETE("/lines/:lineId", assistantHandler.RemoveLine)
		a.GET("/preview/:lineId", assistantHandler.PreviewLine)
		a.POST("/layout", assistantHandler.Layout)
		a.POST("/checkout", middleware.AuthMiddleware(deps.JWT, deps.Denylist), assistantHandler.Checkout)
	}
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Logger)

	a := rg.Group("/auth")
	{
		a.POST("/google", authHandler.Google)

		protected := a.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWT, deps.Denylist))
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/logout", authHandler.Logout)
			protected.POST("/verify-token", authHandler.VerifyToken)
		}
	}
}

// SetupCartRoutes sets up the signed-in cart routes
func SetupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Cart, deps.PDF, deps.Users, deps.Logger)

	c := rg.Group("/cart")
	c.Use(middleware.AuthMiddleware(deps.JWT, deps.Denylist))
	{
		c.GET("", cartHandler.GetCart)
		c.POST("/add", cartHandler.AddItem)
		c.PUT("/update/:itemId", cartHandler.UpdateItem)
		c.DELETE("/remove/:itemId", cartHandler.RemoveItem)
		c.DELETE("/clear", cartHandler.ClearCart)
		c.POST("/sync", cartHandler.Sync)
		c.GET("/quote.pdf", cartHandler.Quote)
	}
}
