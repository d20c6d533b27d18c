package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("TZ", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.HTTPAddr)
	}
	if cfg.SQLitePath == "" {
		t.Fatal("expected a default sqlite path")
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC, got %v", cfg.Location)
	}
	if cfg.LoginRateLimit != 10 {
		t.Fatalf("expected login limit 10, got %d", cfg.LoginRateLimit)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOGIN_RATE_LIMIT", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a non-numeric LOGIN_RATE_LIMIT")
	}
}

func TestLoadFallsBackOnUnknownZone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LOGIN_RATE_LIMIT", "")
	t.Setenv("TZ", "Mars/Olympus_Mons")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", cfg.Location)
	}
}

func TestLoadPanicsWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for missing JWT_SECRET")
		}
	}()
	_, _ = Load()
}
