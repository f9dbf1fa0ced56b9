package config_test

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/notebook/internal/config"
)

const validSecret = "0123456789abcdef0123456789abcdef"

// clearEnv blanks every variable FromEnv reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_PATH", "SESSION_SECRET", "SESSION_TTL", "COOKIE_SECURE",
		"BCRYPT_COST", "LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", validSecret)

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatabasePath != "notes.db" {
		t.Errorf("expected notes.db, got %s", cfg.DatabasePath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %s", cfg.SessionTTL)
	}
	if !cfg.CookieSecure {
		t.Error("expected secure cookies by default")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %s", cfg.LogLevel)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", validSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/notes.log")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != "9090" || cfg.SessionTTL != 30*time.Minute || cfg.CookieSecure || cfg.BcryptCost != 4 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFile != "/tmp/notes.log" {
		t.Fatalf("log overrides not applied: %+v", cfg)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{}, "SESSION_SECRET environment variable is required"},
		{"short secret", map[string]string{"SESSION_SECRET": "short"}, "at least 32 characters"},
		{"bcrypt too low", map[string]string{"SESSION_SECRET": validSecret, "BCRYPT_COST": "3"}, "BCRYPT_COST must be between 4 and 14"},
		{"bcrypt not a number", map[string]string{"SESSION_SECRET": validSecret, "BCRYPT_COST": "high"}, "invalid BCRYPT_COST"},
		{"bad ttl", map[string]string{"SESSION_SECRET": validSecret, "SESSION_TTL": "forever"}, "invalid SESSION_TTL"},
		{"negative ttl", map[string]string{"SESSION_SECRET": validSecret, "SESSION_TTL": "-1h"}, "SESSION_TTL must be positive"},
		{"bad port", map[string]string{"SESSION_SECRET": validSecret, "PORT": "http"}, "PORT must be numeric"},
		{"bad log level", map[string]string{"SESSION_SECRET": validSecret, "LOG_LEVEL": "loud"}, "invalid LOG_LEVEL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := config.FromEnv()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
