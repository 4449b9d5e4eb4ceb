package handler

import (
	"net/http"

	"github.com/wonwonleywon/roster-api/pkg/adapters/handler"
	"github.com/wonwonleywon/roster-api/pkg/adapters/repository/sqlite"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, db.sqlite is ephemeral unless DATABASE_URL points
	// at a remote libsql/Turso database.
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	artistService := services.NewArtistService(repo)
	authService := services.NewAuthService(repo, repo, cfg)
	mux = handler.NewRouter(cfg, artistService, authService)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
