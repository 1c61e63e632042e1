package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/siherrmann/blender"
	"github.com/siherrmann/blender/catalog"
	"github.com/siherrmann/blender/helper"
)

// A small catalog of 80s classics across different genres
var sampleCatalog = []catalog.RawGame{
	{GUID: "pac-man", Name: "Pac-Man", Year: 1980, Genre: "Action", Deck: "Maze chase through a haunted labyrinth", Platforms: []string{"Arcade"}},
	{GUID: "galaga", Name: "Galaga", Year: 1981, Genre: "Shooter", Deck: "Fixed shooter against swooping alien fleets", Platforms: []string{"Arcade"}},
	{GUID: "tetris", Name: "Tetris", Year: 1984, Genre: "Puzzle", Deck: "Falling blocks that clear when a row is complete", Platforms: []string{"Game Boy"}},
	{GUID: "super-mario-bros", Name: "Super Mario Bros.", Year: 1985, Genre: "Platformer", Deck: "Side scrolling platform adventure through the Mushroom Kingdom", Platforms: []string{"NES"}},
	{GUID: "the-legend-of-zelda", Name: "The Legend of Zelda", Year: 1986, Genre: "Adventure", Deck: "Open world exploration with dungeons and puzzle solving", Platforms: []string{"NES"}},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
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

	// Load the catalog (validates records, infers metadata, persists games)
	fmt.Println("Loading catalog...")
	if err := b.LoadCatalog(sampleCatalog); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	fmt.Printf("Loaded %d games\n", b.Store.Len())

	// Find the games closest to Pac-Man
	fmt.Println("\nGames similar to Pac-Man:")
	scores, err := b.FindSimilarGames("pac-man", 3)
	if err != nil {
		log.Fatalf("Failed to find similar games: %v", err)
	}
	for i, score := range scores {
		fmt.Printf("  %d. %s (%.4f)\n", i+1, score.GameID, score.Score)
	}

	// Blend two games into a single concept
	result, err := b.CreateBlend([]string{"pac-man", "the-legend-of-zelda"})
	if err != nil {
		log.Fatalf("Failed to create blend: %v", err)
	}

	fmt.Printf("\n--- %s ---\n", result.Name)
	fmt.Printf("Description: %s\n", result.Description)
	fmt.Printf("Compatibility: %.4f\n", result.Path.TotalCompatibility)
	fmt.Printf("Mechanics: %s\n", strings.Join(result.Mechanics, ", "))
	fmt.Printf("Art styles: %s\n", strings.Join(result.ArtStyles, ", "))

	for _, synergy := range result.Synergies {
		fmt.Printf("Synergy (%s, %.2f): %s\n", synergy.Type, synergy.Strength, synergy.Description)
	}
	for _, conflict := range result.Conflicts {
		fmt.Printf("Conflict (%s, %.2f): %s\n", conflict.Type, conflict.Severity, conflict.ResolutionHint)
	}

	fmt.Println("\nBasic example completed successfully!")
}
