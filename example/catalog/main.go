package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/siherrmann/blender"
	"github.com/siherrmann/blender/catalog"
	"github.com/siherrmann/blender/helper"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgresContainer starts a PostgreSQL container for the catalog
// example. It mounts a volume to persist data between runs.
func startPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	// Create data directory if it doesn't exist
	dataDir := "./data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create data directory: %w", err)
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path for data directory: %w", err)
	}

	// Check if database already exists (data directory has PG_VERSION file)
	pgVersionFile := filepath.Join(absDataDir, "PG_VERSION")
	_, err = os.Stat(pgVersionFile)
	dbExists := err == nil

	// When database already exists, PostgreSQL doesn't re-initialize,
	// so the ready message only appears once instead of twice
	waitOccurrences := 2
	if dbExists {
		waitOccurrences = 1
		fmt.Printf("Using existing persistent database in: %s\n", absDataDir)
	} else {
		fmt.Printf("Creating new persistent database in: %s\n", absDataDir)
	}

	options := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase("database"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(waitOccurrences),
		),
		testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = append(hc.Mounts, mount.Mount{
				Type:   mount.TypeBind,
				Source: absDataDir,
				Target: "/var/lib/postgresql/data",
			})
		}),
	}

	pgContainer, err := postgres.Run(
		ctx,
		"pgvector/pgvector:pg16",
		options...,
	)
	if err != nil {
		return nil, "", fmt.Errorf("error starting postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("error getting connection string: %w", err)
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, "", fmt.Errorf("error parsing connection string: %v", err)
	}

	return pgContainer.Terminate, u.Port(), nil
}

func main() {
	// Start a PostgreSQL container with persistence
	teardown, dbPort, err := startPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	b, err := blender.NewBlender(dbConfig, nil, 384)
	if err != nil {
		log.Fatalf("Failed to create blender: %v", err)
	}
	defer b.Close()

	// Read and validate the catalog file
	fmt.Println("Reading catalog file...")
	records, err := b.Builder.LoadCatalogFile("games.json")
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}

	// Skip games loaded into the database by a previous run. The store
	// is filled with all persisted games on startup.
	newRecords, skipped := skipExisting(b, records)
	if len(newRecords) > 0 {
		fmt.Printf("Loading %d new games...\n", len(newRecords))
		if err := b.LoadCatalog(newRecords); err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
	}

	fmt.Printf("\n✓ Catalog Status:\n")
	fmt.Printf("  - Loaded: %d new games\n", len(newRecords))
	fmt.Printf("  - Skipped (already in DB): %d games\n", skipped)
	fmt.Printf("  - Total: %d games\n\n", b.Store.Len())

	ctx := context.Background()

	// Precompute pairings across the whole catalog
	fmt.Println("Precomputing pairings...")
	if err := b.PrecomputePairings(ctx); err != nil {
		log.Fatalf("Failed to precompute pairings: %v", err)
	}

	// Print the best pairings for a few anchor games
	fmt.Println("\nSuggested pairings:")
	fmt.Println(strings.Repeat("=", 20))
	for _, gameID := range []string{"pac-man", "super-mario-bros", "final-fantasy"} {
		suggestions, err := b.SuggestPairings(gameID)
		if err != nil {
			log.Printf("Pairing suggestion for %s failed: %v", gameID, err)
			continue
		}

		fmt.Printf("\n%s:\n", gameID)
		if len(suggestions) == 0 {
			fmt.Println("  (no pairing above the threshold)")
			continue
		}
		for i, suggestion := range suggestions {
			if i >= 3 {
				break
			}
			fmt.Printf("  %d. %s (%.4f)\n", i+1, suggestion.GameID, suggestion.Score)
		}
	}

	// Blend a close pairing and a deliberate genre clash
	fmt.Println("\nBlends:")
	fmt.Println(strings.Repeat("=", 20))
	printBlend(b, []string{"super-mario-bros", "sonic-the-hedgehog"})
	printBlend(b, []string{"pac-man", "doom"})
	printBlend(b, []string{"the-legend-of-zelda", "final-fantasy", "chrono-trigger"})

	fmt.Println("\n" + strings.Repeat("=", 20))
	fmt.Println("Catalog example complete!")
}

// skipExisting splits the catalog records into those not yet stored,
// counting the ones a previous run already loaded.
func skipExisting(b *blender.Blender, records []catalog.RawGame) ([]catalog.RawGame, int) {
	newRecords := make([]catalog.RawGame, 0, len(records))
	skipped := 0
	for _, record := range records {
		if _, ok := b.Store.Game(record.GUID); ok {
			skipped++
			continue
		}
		newRecords = append(newRecords, record)
	}
	return newRecords, skipped
}

func printBlend(b *blender.Blender, gameIDs []string) {
	result, err := b.CreateBlend(gameIDs)
	if err != nil {
		log.Printf("Blend of %s failed: %v", strings.Join(gameIDs, " + "), err)
		return
	}

	fmt.Printf("\n%s\n", result.Name)
	fmt.Printf("  %s\n", result.Description)
	fmt.Printf("  Order: %s | Compatibility: %.4f\n", strings.Join(result.Path.GameIDs, " -> "), result.Path.TotalCompatibility)
	for _, synergy := range result.Synergies {
		fmt.Printf("  Synergy (%s): %s\n", synergy.Type, synergy.Description)
	}
	for _, conflict := range result.Conflicts {
		fmt.Printf("  Conflict (%s): %s\n", conflict.Type, conflict.ResolutionHint)
	}
}
