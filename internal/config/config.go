// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Google   GoogleConfig
	Security SecurityConfig
	Session  SessionConfig
	Assets   AssetsConfig
	Widget   WidgetConfig
	Pricing  PricingConfig
	External ExternalConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	FrontendURL string
	CompanyName string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver       string // postgres or sqlite
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// GoogleConfig contains Google sign-in configuration
type GoogleConfig struct {
	ClientID string
	// TrustClientProfile accepts the profile posted by the browser when no
	// client id is configured. Development only.
	TrustClientProfile bool
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// SessionConfig contains browser session configuration for the checkout assistant
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// AssetsConfig describes where product images are served from
type AssetsConfig struct {
	Dir       string
	URLPrefix string
}

// WidgetConfig contains the floating widget geometry
type WidgetConfig struct {
	ControlSize   float64
	SnapMargin    float64
	PanelMargin   float64
	PanelWidth    float64
	PanelHeight   float64
	MaxQuantity   int
	DefaultWidth  float64
	DefaultHeight float64
}

// PricingConfig contains unit prices per size in minor currency units
type PricingConfig struct {
	Currency string
	Small    int64
	Medium   int64
	Large    int64
	XLarge   int64
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Email    EmailConfig
	Telegram TelegramConfig
	PDF      PDFConfig
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	Provider     string
	APIKey       string
	FromEmail    string
	FromName     string
	ReplyTo      string
	ShopInbox    string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

// TelegramConfig contains shop-owner notification configuration
type TelegramConfig struct {
	BotToken string
	ChatID   int64
	Debug    bool
}

// PDFConfig contains wkhtmltopdf configuration
type PDFConfig struct {
	BinaryPath string
	DPI        uint
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "PressArt Storefront API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			FrontendURL: frontendURL,
			CompanyName: getEnv("COMPANY_NAME", "PressArt"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "3001"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			MaxBodyBytes:   getEnvAsInt64("SERVER_MAX_BODY_BYTES", 1<<20), // 1MB
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "pressart_db"),
			User:         getEnv("DB_USER", "pressart"),
			Password:     getEnv("DB_PASSWORD", "pressart"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "pressart.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "pressart-development-secret-change-in-production"),
			ExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		Google: GoogleConfig{
			ClientID:           getEnv("GOOGLE_CLIENT_ID", ""),
			TrustClientProfile: getEnvAsBool("GOOGLE_TRUST_CLIENT_PROFILE", false),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{frontendURL}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "session_id"),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Assets: AssetsConfig{
			Dir:       getEnv("ASSETS_DIR", "./public/Images"),
			URLPrefix: getEnv("ASSETS_URL_PREFIX", "/Images"),
		},
		Widget: WidgetConfig{
			ControlSize:   getEnvAsFloat("WIDGET_CONTROL_SIZE", 64),
			SnapMargin:    getEnvAsFloat("WIDGET_SNAP_MARGIN", 24),
			PanelMargin:   getEnvAsFloat("WIDGET_PANEL_MARGIN", 16),
			PanelWidth:    getEnvAsFloat("WIDGET_PANEL_WIDTH", 320),
			PanelHeight:   getEnvAsFloat("WIDGET_PANEL_HEIGHT", 480),
			MaxQuantity:   getEnvAsInt("WIDGET_MAX_QUANTITY", 10),
			DefaultWidth:  getEnvAsFloat("WIDGET_DEFAULT_VIEWPORT_WIDTH", 1280),
			DefaultHeight: getEnvAsFloat("WIDGET_DEFAULT_VIEWPORT_HEIGHT", 800),
		},
		Pricing: PricingConfig{
			Currency: getEnv("PRICE_CURRENCY", "PHP"),
			Small:    getEnvAsInt64("PRICE_SMALL", 29900),
			Medium:   getEnvAsInt64("PRICE_MEDIUM", 44900),
			Large:    getEnvAsInt64("PRICE_LARGE", 59900),
			XLarge:   getEnvAsInt64("PRICE_EXTRA_LARGE", 79900),
		},
		External: ExternalConfig{
			Email: EmailConfig{
				Provider:     getEnv("EMAIL_PROVIDER", "smtp"),
				APIKey:       getEnv("EMAIL_API_KEY", ""),
				FromEmail:    getEnv("FROM_EMAIL", "noreply@pressart.local"),
				FromName:     getEnv("FROM_NAME", "PressArt"),
				ReplyTo:      getEnv("EMAIL_REPLY_TO", ""),
				ShopInbox:    getEnv("SHOP_INBOX", ""),
				SMTPHost:     getEnv("SMTP_HOST", ""),
				SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
				SMTPUsername: getEnv("SMTP_USER", ""),
				SMTPPassword: getEnv("SMTP_PASS", ""),
				SMTPUseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
			},
			Telegram: TelegramConfig{
				BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
				ChatID:   getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
				Debug:    getEnvAsBool("TELEGRAM_DEBUG", false),
			},
			PDF: PDFConfig{
				BinaryPath: getEnv("WKHTMLTOPDF_PATH", ""),
				DPI:        uint(getEnvAsInt("PDF_DPI", 300)),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Google.ClientID == "" && !c.Google.TrustClientProfile {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required unless GOOGLE_TRUST_CLIENT_PROFILE is set")
	}
	if c.Google.TrustClientProfile && c.IsProduction() {
		return fmt.Errorf("GOOGLE_TRUST_CLIENT_PROFILE cannot be enabled in production")
	}

	if c.Widget.ControlSize <= 0 || c.Widget.PanelWidth <= 0 || c.Widget.PanelHeight <= 0 {
		return fmt.Errorf("widget dimensions must be positive")
	}
	if c.Widget.MaxQuantity < 1 {
		return fmt.Errorf("WIDGET_MAX_QUANTITY must be at least 1")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration also accepts the "7d" day suffix used by JWT_EXPIRES_IN.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if strings.HasSuffix(value, "d") {
		if days, err := strconv.Atoi(strings.TrimSuffix(value, "d")); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
