package config

import (
	"fmt"
	"strings"
	"time"

	"hotel-frontend/utils"
)

const (
	DefaultGuestNoticeDuration = 4 * time.Second
	DefaultBookingDelay        = 2 * time.Second
	DefaultAPIBaseURL          = "http://127.0.0.1:8000"
)

// Config is everything the service reads from the environment.
type Config struct {
	Port        string
	APIBaseURL  string
	CORSOrigins []string

	DBDriver   string
	SQLitePath string

	SessionCookie string

	// Presentation timings carried over from the site. They have no
	// functional meaning and can be set to zero.
	GuestNoticeDuration time.Duration
	BookingDelay        time.Duration

	// UpstreamTimeout of zero means requests to the backend never time out.
	UpstreamTimeout time.Duration
}

// Load reads the configuration. godotenv should already have run.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          utils.EnvOrDefault("PORT", "8080"),
		APIBaseURL:    strings.TrimRight(utils.FirstEnv(DefaultAPIBaseURL, "API_BASE_URL", "NEXT_PUBLIC_API_BASE", "NEXT_PUBLIC_API_URL"), "/"),
		CORSOrigins:   parseCorsOrigins(utils.EnvOrDefault("CORS_ORIGINS", "")),
		DBDriver:      strings.ToLower(utils.EnvOrDefault("DB_DRIVER", "sqlite")),
		SQLitePath:    utils.EnvOrDefault("SQLITE_PATH", "hotel-frontend.db"),
		SessionCookie: utils.EnvOrDefault("SESSION_COOKIE", "hf_session"),
	}

	var err error
	if cfg.GuestNoticeDuration, err = utils.EnvDuration("GUEST_NOTICE_DURATION", DefaultGuestNoticeDuration); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.BookingDelay, err = utils.EnvDuration("BOOKING_DELAY", DefaultBookingDelay); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.UpstreamTimeout, err = utils.EnvDuration("UPSTREAM_TIMEOUT", 0); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("load config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
