package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/siherrmann/blender"
	"github.com/siherrmann/blender/catalog"
	"github.com/siherrmann/blender/helper"
	"github.com/siherrmann/blender/model"
)

// A catalog spanning three console generations and most standard genres
var sampleCatalog = []catalog.RawGame{
	{GUID: "pac-man", Name: "Pac-Man", Year: 1980, Genre: "Action", Deck: "Maze chase through a haunted labyrinth", Platforms: []string{"Arcade"}},
	{GUID: "galaga", Name: "Galaga", Year: 1981, Genre: "Shooter", Deck: "Fixed shooter against swooping alien fleets", Platforms: []string{"Arcade"}},
	{GUID: "tetris", Name: "Tetris", Year: 1984, Genre: "Puzzle", Deck: "Falling blocks that clear when a row is complete", Platforms: []string{"Game Boy"}},
	{GUID: "super-mario-bros", Name: "Super Mario Bros.", Year: 1985, Genre: "Platformer", Deck: "Side scrolling platform adventure through the Mushroom Kingdom", Platforms: []string{"NES"}},
	{GUID: "the-legend-of-zelda", Name: "The Legend of Zelda", Year: 1986, Genre: "Adventure", Deck: "Open world exploration with dungeons and puzzle solving", Platforms: []string{"NES"}},
	{GUID: "final-fantasy", Name: "Final Fantasy", Year: 1987, Genre: "Role-Playing", Deck: "Turn based party battles against an ancient evil", Platforms: []string{"NES"}},
	{GUID: "sim-city", Name: "SimCity", Year: 1989, Genre: "Simulation", Deck: "Build and manage a growing city", Platforms: []string{"SNES"}},
	{GUID: "street-fighter-ii", Name: "Street Fighter II", Year: 1991, Genre: "Fighting", Deck: "One on one fighting tournament around the world", Platforms: []string{"Arcade", "SNES"}},
}

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration
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

	// Set up the default pipeline so loaded games get semantic embeddings
	fmt.Println("Setting up embedding pipeline...")
	if err := b.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	fmt.Println("=== Loading Catalog ===")
	if err := b.LoadCatalog(sampleCatalog); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	fmt.Printf("Loaded %d games with embeddings\n", b.Store.Len())

	ctx := context.Background()

	// 1. Similarity ranking
	fmt.Println("\n=== 1. Similarity Ranking ===")
	scores, err := b.FindSimilarGames("super-mario-bros", 3)
	if err != nil {
		log.Fatalf("Similarity ranking failed: %v", err)
	}
	printScores("Games similar to Super Mario Bros.", scores)

	// 2. Compatibility filtering
	fmt.Println("\n=== 2. Compatibility Filtering ===")
	compatible, err := b.FindCompatibleGames("pac-man", 0.5)
	if err != nil {
		log.Fatalf("Compatibility filtering failed: %v", err)
	}
	printScores("Games compatible with Pac-Man (threshold 0.5)", compatible)

	// 3. Multi-game blend
	fmt.Println("\n=== 3. Multi-Game Blend ===")
	result, err := b.CreateBlend([]string{"pac-man", "the-legend-of-zelda", "final-fantasy", "sim-city"})
	if err != nil {
		log.Fatalf("Blend failed: %v", err)
	}
	printBlend(result)

	// 4. Pairing precomputation
	fmt.Println("\n=== 4. Pairing Precomputation ===")
	if err := b.PrecomputePairings(ctx); err != nil {
		log.Fatalf("Pairing precomputation failed: %v", err)
	}
	suggestions, err := b.SuggestPairings("galaga")
	if err != nil {
		log.Fatalf("Pairing suggestion failed: %v", err)
	}
	printScores("Suggested pairings for Galaga", suggestions)

	// 5. Semantic search over the stored embeddings
	fmt.Println("\n=== 5. Semantic Search ===")
	query := "exploring dungeons and solving puzzles"
	fmt.Printf("Querying: %s\n", query)
	found, err := b.Search(ctx, query, 3)
	if err != nil {
		log.Fatalf("Semantic search failed: %v", err)
	}
	for i, game := range found {
		fmt.Printf("  %d. %s (%d, %s) similarity %.4f\n", i+1, game.Name, game.Year, game.PrimaryGenre, game.Similarity)
	}

	// 6. Demonstrate index type switching
	fmt.Println("\n=== 6. Changing Index Type ===")
	fmt.Println("Switching to IVFFlat index...")
	err = b.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{
		"lists": 100,
	})
	if err != nil {
		log.Printf("Warning: Index change failed (this is okay for small datasets): %v", err)
	} else {
		fmt.Println("Successfully switched to IVFFlat index")
	}

	// Switch back to HNSW
	fmt.Println("Switching back to HNSW index...")
	err = b.ChangeIndexType(ctx, "hnsw", map[string]interface{}{
		"m":               16,
		"ef_construction": 64,
	})
	if err != nil {
		log.Printf("Warning: Index change failed: %v", err)
	} else {
		fmt.Println("Successfully switched to HNSW index")
	}

	fmt.Println("\n=== Advanced Example Completed Successfully! ===")
	fmt.Println("\nKey features demonstrated:")
	fmt.Println("✓ Catalog loading with embedding enrichment")
	fmt.Println("✓ Structural similarity ranking")
	fmt.Println("✓ Compatibility filtering by threshold")
	fmt.Println("✓ Multi-game blend with synergies and conflicts")
	fmt.Println("✓ Pairing precomputation and suggestions")
	fmt.Println("✓ Semantic search over stored embeddings")
	fmt.Println("✓ Index type switching (HNSW ↔ IVFFlat)")
}

func printScores(title string, scores []*model.SimilarityScore) {
	fmt.Printf("%s:\n", title)
	if len(scores) == 0 {
		fmt.Println("  (none)")
		return
	}
	for i, score := range scores {
		fmt.Printf("  %d. %s (%.4f)\n", i+1, score.GameID, score.Score)
	}
}

func printBlend(result *model.BlendResult) {
	fmt.Printf("Name: %s\n", result.Name)
	fmt.Printf("Description: %s\n", result.Description)
	fmt.Printf("Blend order: %s\n", strings.Join(result.Path.GameIDs, " -> "))
	fmt.Printf("Total compatibility: %.4f\n", result.Path.TotalCompatibility)
	fmt.Printf("Complexity: %.2f | Action/strategy balance: %.2f\n", result.ComplexityScore, result.ActionStrategyBalance)
	fmt.Printf("Mechanics: %s\n", strings.Join(result.Mechanics, ", "))

	for _, synergy := range result.Synergies {
		fmt.Printf("Synergy (%s, %.2f): %s\n", synergy.Type, synergy.Strength, synergy.Description)
	}
	for _, conflict := range result.Conflicts {
		fmt.Printf("Conflict (%s, %.2f): %s\n", conflict.Type, conflict.Severity, conflict.ResolutionHint)
	}
	for _, feature := range result.RecommendedFeatures {
		fmt.Printf("Recommended: %s\n", feature)
	}
}
