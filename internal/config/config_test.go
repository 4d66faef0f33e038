package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "MONGODB_URI", "MONGO_DATABASE",
		"JWT_SECRET", "JWT_EXPIRES_IN", "ADMIN_CODE", "ADMIN_EMAIL",
		"BOT_TOKEN", "TELEGRAM_BOT_TOKEN", "CHAT_ID", "TELEGRAM_CHAT_ID",
		"CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load(zerolog.Nop())

	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	if cfg.JWTSecret != devJWTSecret {
		t.Fatalf("expected development JWT secret fallback, got %q", cfg.JWTSecret)
	}
	if cfg.AdminCode != devAdminCode {
		t.Fatalf("expected development admin code fallback, got %q", cfg.AdminCode)
	}
	if cfg.AdminEmail != "admin@medqueue.uz" {
		t.Fatalf("unexpected admin email %q", cfg.AdminEmail)
	}
	if cfg.JWTExpiry != time.Hour {
		t.Fatalf("expected 1h token expiry, got %v", cfg.JWTExpiry)
	}
	if cfg.IsProduction() {
		t.Fatal("default config must not report production")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("ADMIN_CODE", "secret-code")
	t.Setenv("CORS_ORIGINS", "https://medqueue.uz,https://admin.medqueue.uz")

	cfg := Load(zerolog.Nop())

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production mode")
	}
	if cfg.JWTSecret != "real-secret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
	if cfg.JWTExpiry != 30*time.Minute {
		t.Fatalf("expected 30m expiry, got %v", cfg.JWTExpiry)
	}
	if cfg.AdminCode != "secret-code" {
		t.Fatalf("unexpected admin code %q", cfg.AdminCode)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://medqueue.uz" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestLoad_InvalidExpiryFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRES_IN", "soon")

	cfg := Load(zerolog.Nop())
	if cfg.JWTExpiry != time.Hour {
		t.Fatalf("expected fallback to 1h, got %v", cfg.JWTExpiry)
	}
}

func TestLoad_TelegramAliases(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "12345:abcdef")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")

	cfg := Load(zerolog.Nop())
	if cfg.BotToken != "12345:abcdef" {
		t.Fatalf("expected TELEGRAM_BOT_TOKEN alias to apply, got %q", cfg.BotToken)
	}
	if cfg.ChatID != "-100200300" {
		t.Fatalf("expected TELEGRAM_CHAT_ID alias to apply, got %q", cfg.ChatID)
	}
}
