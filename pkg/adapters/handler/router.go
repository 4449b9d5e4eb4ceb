package handler

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/ports"
)

// NewRouter creates and configures the main application router.
func NewRouter(cfg *config.Config, artists ports.ArtistService, auth ports.AuthService) http.Handler {
	// Initialize Handlers
	ah := NewArtistHandler(artists)
	authHandler := NewAuthHandler(cfg, auth)

	// Initialize Middleware
	mw := NewMiddleware(auth, cfg.CookieName)

	// Setup Router
	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("GET /api/artists", ah.List)
	mux.HandleFunc("POST /api/login", authHandler.Login)

	if cfg.AuthMode == config.AuthModeSession {
		mux.HandleFunc("POST /api/logout", authHandler.Logout)
	}

	// Registration over HTTP is a deliberate opt-in; normally admins are
	// seeded with the CLI and this route does not exist.
	if cfg.RegistrationOpen {
		mux.HandleFunc("POST /api/register", authHandler.Register)
	}

	// Google sign-in is only wired when client credentials are configured.
	if cfg.GoogleClientID != "" {
		mux.HandleFunc("GET /auth/google/login", authHandler.GoogleLogin)
		mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)
	}

	// Protected Routes (admin panel)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/admin/artists", ah.List)
	protectedMux.HandleFunc("POST /api/admin/artists/add", ah.Add)
	protectedMux.HandleFunc("POST /api/admin/artists/update/{id}", ah.Update)
	protectedMux.HandleFunc("DELETE /api/admin/artists/delete/{id}", ah.Delete)
	protectedMux.HandleFunc("POST /api/admin/artists/reorder", ah.Reorder)

	// Apply Middleware to Protected Routes
	mux.Handle("/api/admin/", mw.RequireAdmin(protectedMux))

	// CORS wraps the whole router; the allow-list comes from the
	// environment and credentials must be allowed for the session cookie.
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return c.Handler(mux)
}
