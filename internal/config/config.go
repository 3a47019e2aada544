package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode            string        `mapstructure:"GIN_MODE"`
	ServerHost         string        `mapstructure:"SERVER_HOST"`
	ServerPort         string        `mapstructure:"SERVER_PORT"`
	ServerTimeout      time.Duration `mapstructure:"-"` // SERVER_TIMEOUT_SECONDS
	CORSAllowedOrigins []string      `mapstructure:"-"` // CORS_ALLOWED_ORIGINS
	// Proxies whose X-Forwarded-For is believed. Empty trusts none, so the
	// client IP is the connection's peer address.
	TrustedProxies []string `mapstructure:"-"` // TRUSTED_PROXIES

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"` // DB_CONN_MAX_LIFETIME_MINUTES
	DBSource          string        `mapstructure:"DB_SOURCE"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Session tokens and cookies
	JWTSecretKey       string        `mapstructure:"JWT_SECRET_KEY"`
	AccessTokenExpiry  time.Duration `mapstructure:"-"` // JWT_ACCESS_TOKEN_EXPIRY_MINUTES
	RefreshTokenExpiry time.Duration `mapstructure:"-"` // JWT_REFRESH_TOKEN_EXPIRY_DAYS
	CookieDomain       string        `mapstructure:"COOKIE_DOMAIN"`
	CookieSecure       bool          `mapstructure:"COOKIE_SECURE"`
	CookieSameSite     string        `mapstructure:"COOKIE_SAME_SITE"`

	// Redis (refresh token store)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Firebase Configuration. Optional: when the key path is empty, Firebase
	// sign-in and session cookies are disabled.
	FirebaseServiceAccountKeyPath string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string        `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseSessionCookieExpiry   time.Duration `mapstructure:"-"` // FIREBASE_SESSION_COOKIE_DAYS

	// Elasticsearch Configuration. Empty URL disables the catalog index.
	ElasticsearchURL string `mapstructure:"ELASTICSEARCH_URL"`

	// Cron Jobs
	CatalogReindexSchedule string `mapstructure:"CATALOG_REINDEX_SCHEDULE"`

	// Media
	StoragePath        string `mapstructure:"STORAGE_PATH"`
	MediaPublicBaseURL string `mapstructure:"MEDIA_PUBLIC_BASE_URL"`
	MaxUploadSizeMB    int64  `mapstructure:"MAX_UPLOAD_SIZE_MB"`

	// Form rate limiting, per client IP
	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are configured as plain integers in their named unit and
	// lists as comma separated strings, so they are decoded by hand.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.AccessTokenExpiry = time.Duration(v.GetInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES")) * time.Minute
	cfg.RefreshTokenExpiry = time.Duration(v.GetInt("JWT_REFRESH_TOKEN_EXPIRY_DAYS")) * 24 * time.Hour
	cfg.FirebaseSessionCookieExpiry = time.Duration(v.GetInt("FIREBASE_SESSION_COOKIE_DAYS")) * 24 * time.Hour
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.TrustedProxies = splitList(v.GetString("TRUSTED_PROXIES"))

	cfg.DBSource = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode, cfg.DBTimezone)
	cfg.MediaPublicBaseURL = strings.TrimRight(cfg.MediaPublicBaseURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TRUSTED_PROXIES", "")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "seltronik_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Jakarta")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	v.SetDefault("JWT_REFRESH_TOKEN_EXPIRY_DAYS", 7)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAME_SITE", "lax")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_SESSION_COOKIE_DAYS", 5)

	v.SetDefault("ELASTICSEARCH_URL", "")
	v.SetDefault("CATALOG_REINDEX_SCHEDULE", "@every 6h")

	v.SetDefault("STORAGE_PATH", "./storage")
	v.SetDefault("MEDIA_PUBLIC_BASE_URL", "")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 20)

	v.SetDefault("RATE_LIMIT_RPS", 1)
	v.SetDefault("RATE_LIMIT_BURST", 5)
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecretKey) == "" {
		return fmt.Errorf("FATAL: JWT_SECRET_KEY is not set")
	}
	if len(c.JWTSecretKey) < 32 && c.GinMode == "release" {
		return fmt.Errorf("FATAL: JWT_SECRET_KEY must be at least 32 characters in release mode")
	}
	if c.FirebaseServiceAccountKeyPath != "" {
		if _, err := os.Stat(c.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", c.FirebaseServiceAccountKeyPath)
		}
	}
	switch strings.ToLower(c.CookieSameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("COOKIE_SAME_SITE must be one of lax, strict, none; got %q", c.CookieSameSite)
	}
	return nil
}

// FirebaseEnabled reports whether Firebase sign-in is configured.
func (c *Config) FirebaseEnabled() bool {
	return c.FirebaseServiceAccountKeyPath != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
