package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// Development-only fallbacks. Loud warnings are logged when either is
	// active; neither must ever reach production.
	devJWTSecret = "default-secret-key-for-development"
	devAdminCode = "123"
)

// Config holds all process configuration, read once at startup.
type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTExpiry     time.Duration
	AdminCode     string
	AdminEmail    string
	BotToken      string
	ChatID        string
	CORSOrigins   []string
}

// Load reads configuration from the environment. Missing optional values
// fall back to defaults; the insecure development fallbacks for JWT_SECRET
// and ADMIN_CODE are reported through the given logger.
func Load(logger zerolog.Logger) *Config {
	cfg := &Config{
		Port:          getenv("PORT", "5000"),
		Env:           getenv("APP_ENV", "development"),
		MongoURI:      getenv("MONGODB_URI", "mongodb://localhost:27017/medqueue"),
		MongoDatabase: getenv("MONGO_DATABASE", "medqueue"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiry:     time.Hour,
		AdminCode:     os.Getenv("ADMIN_CODE"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@medqueue.uz"),
		BotToken:      getenv("BOT_TOKEN", os.Getenv("TELEGRAM_BOT_TOKEN")),
		ChatID:        getenv("CHAT_ID", os.Getenv("TELEGRAM_CHAT_ID")),
		CORSOrigins:   []string{"http://localhost:3000", "http://localhost:3006", "http://localhost:5000"},
	}

	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.JWTExpiry = d
		} else {
			logger.Warn().Str("value", raw).Msg("invalid JWT_EXPIRES_IN, using default of 1h")
		}
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		cfg.CORSOrigins = strings.Split(raw, ",")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = devJWTSecret
		logger.Warn().Msg("JWT_SECRET is not set, using INSECURE development default")
	}
	if cfg.AdminCode == "" {
		cfg.AdminCode = devAdminCode
		logger.Warn().Msg("ADMIN_CODE is not set, using INSECURE development default")
	}

	return cfg
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
