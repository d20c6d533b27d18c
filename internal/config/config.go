package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string
	DatabaseURL          string
	SQLitePath           string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CookieSecure         bool

	JWTSecret string

	Location *time.Location
	LogLevel string

	GeminiAPIKey string
	GeminiModel  string

	// Login attempts allowed per minute per client address.
	LoginRateLimit int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getenv("DATABASE_URL", ""),
		SQLitePath:           getenv("SQLITE_PATH", "data/streakboard.db"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
		CookieSecure:         getenv("COOKIE_SECURE", "false") == "true",
		LogLevel:             getenv("LOG_LEVEL", "info"),
		GeminiAPIKey:         getenv("GEMINI_API_KEY", ""),
		GeminiModel:          getenv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	limit, err := strconv.Atoi(getenv("LOGIN_RATE_LIMIT", "10"))
	if err != nil || limit <= 0 {
		return cfg, fmt.Errorf("invalid LOGIN_RATE_LIMIT %q", os.Getenv("LOGIN_RATE_LIMIT"))
	}
	cfg.LoginRateLimit = limit

	cfg.Location = loadLocation(getenv("TZ", "UTC"))
	cfg.JWTSecret = mustGetenv("JWT_SECRET")
	return cfg, nil
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return loc
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
