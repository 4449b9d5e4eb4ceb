package config

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthModeToken   = "token"
	AuthModeSession = "session"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	AuthMode           string
	JWTSecret          string
	SessionTTL         time.Duration
	CORSOrigins        []string
	CookieName         string
	CookieSameSite     http.SameSite
	RegistrationOpen   bool
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	AllowedEmails      []string
	FrontendURL        string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		AuthMode:           getEnv("AUTH_MODE", AuthModeToken),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		SessionTTL:         getDuration("SESSION_TTL", 2*time.Hour),
		CORSOrigins:        splitList(getEnv("CORS_ORIGIN", "http://localhost:4200")),
		CookieName:         getEnv("COOKIE_NAME", "auth_token"),
		CookieSameSite:     parseSameSite(getEnv("COOKIE_SAMESITE", "lax")),
		RegistrationOpen:   getEnv("REGISTRATION_OPEN", "false") == "true",
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		AllowedEmails:      splitList(getEnv("ALLOWED_EMAILS", "")),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:4200/admin"),
	}
}

// IsProduction controls the Secure flag on auth cookies.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// splitList parses a comma-separated env value, trimming trailing slashes
// so origin comparisons are not tripped up by "https://site.com/".
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
