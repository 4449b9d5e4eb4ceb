package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wonwonleywon/roster-api/pkg/adapters/repository/sqlite"
	"github.com/wonwonleywon/roster-api/pkg/config"
	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/core/services"
)

const usage = "expected 'seed-admin', 'list-admins', 'export' or 'import' subcommands"

func main() {
	seedCmd := flag.NewFlagSet("seed-admin", flag.ExitOnError)
	seedUser := seedCmd.String("username", "", "admin username")
	seedPass := seedCmd.String("password", "", "admin password")

	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	switch os.Args[1] {
	case "seed-admin":
		seedCmd.Parse(os.Args[2:])
		if *seedUser == "" || *seedPass == "" {
			seedCmd.PrintDefaults()
			os.Exit(1)
		}
		doSeedAdmin(repo, cfg, *seedUser, *seedPass)
	case "list-admins":
		doListAdmins(repo)
	case "export":
		doExport(repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(repo, *importFile)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

// doSeedAdmin provisions an admin credential. This is the supported path
// when HTTP registration is closed (the default).
func doSeedAdmin(repo *sqlite.SQLiteRepository, cfg *config.Config, username, password string) {
	auth := services.NewAuthService(repo, repo, cfg)
	admin, err := auth.Register(context.Background(), username, password)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Printf("Created admin %s (%s)", admin.Username, admin.ID)
}

func doListAdmins(repo *sqlite.SQLiteRepository) {
	admins, err := repo.ListAdmins(context.Background())
	if err != nil {
		log.Fatalf("List failed: %v", err)
	}
	for _, a := range admins {
		fmt.Printf("%s\t%s\t%s\n", a.ID, a.Username, a.CreatedAt.Format("2006-01-02"))
	}
}

func doExport(repo *sqlite.SQLiteRepository) {
	artists, err := repo.Dump(context.Background())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(artists); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(repo *sqlite.SQLiteRepository, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	var artists []domain.Artist
	if err := json.NewDecoder(file).Decode(&artists); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	ctx := context.Background()
	count := 0
	for _, a := range artists {
		existing, _ := repo.GetByID(ctx, a.ID)
		if existing != nil {
			log.Printf("Skipping existing artist: %s", a.ID)
			continue
		}

		if err := repo.Create(ctx, &a); err != nil {
			log.Printf("Failed to import %s: %v", a.Name, err)
		} else {
			count++
		}
	}
	log.Printf("Imported %d artists", count)
}
