package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/wonwonleywon/roster-api/pkg/adapters/handler"
	"github.com/wonwonleywon/roster-api/pkg/adapters/repository/sqlite"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/services"
)

func main() {
	cfg := config.Load()

	// Initialize Repository
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize Services
	artistService := services.NewArtistService(repo)
	authService := services.NewAuthService(repo, repo, cfg)

	// Session mode: sweep expired sessions in the background so the table
	// does not grow without bound.
	if cfg.AuthMode == config.AuthModeSession {
		go sweepSessions(repo)
	}

	// Initialize Router
	mux := handler.NewRouter(cfg, artistService, authService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s (auth mode: %s)", cfg.Port, cfg.AuthMode)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func sweepSessions(repo *sqlite.SQLiteRepository) {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		if err := repo.DeleteExpiredSessions(context.Background()); err != nil {
			log.Printf("Session sweep failed: %v", err)
		}
	}
}
