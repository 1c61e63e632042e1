package blender

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/siherrmann/blender/cache"
	"github.com/siherrmann/blender/catalog"
	"github.com/siherrmann/blender/core/blend"
	"github.com/siherrmann/blender/core/pipeline"
	"github.com/siherrmann/blender/core/similarity"
	"github.com/siherrmann/blender/database"
	"github.com/siherrmann/blender/helper"
	"github.com/siherrmann/blender/model"
	loadSql "github.com/siherrmann/blender/sql"
)

// Blender provides a unified interface to the catalog, the compatibility
// engine and the persistence layer
type Blender struct {
	DB         *helper.Database
	Games      database.GamesDBHandlerFunctions
	Store      *catalog.Store
	Builder    *catalog.MetadataBuilder
	Engine     *similarity.Engine
	Analyzer   *blend.Analyzer
	Finder     *blend.PathFinder
	Aggregator *blend.Aggregator
	Pipeline   *pipeline.Pipeline  // Optional embedding pipeline
	Pairings   *cache.PairingCache // Optional pairing cache
	config     model.BlendConfig
	// Logging
	log *slog.Logger
}

// NewBlender creates a new Blender instance with all handlers initialized.
// A nil dbConfig falls back to the environment, a nil blendConfig to the
// default weights. All games already persisted are loaded into the store.
func NewBlender(dbConfig *helper.DatabaseConfiguration, blendConfig *model.BlendConfig, embeddingDim int) (*Blender, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	if dbConfig == nil {
		var err error
		dbConfig, err = helper.NewDatabaseConfiguration()
		if err != nil {
			return nil, helper.NewError("create database configuration", err)
		}
	}
	if blendConfig == nil {
		defaultConfig := model.DefaultBlendConfig()
		blendConfig = &defaultConfig
	}

	// Initialize database
	db := helper.NewDatabase("blender", dbConfig, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	games, err := database.NewGamesDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create games handler", err)
	}

	builder, err := catalog.NewMetadataBuilder()
	if err != nil {
		return nil, helper.NewError("create metadata builder", err)
	}

	blender := &Blender{
		DB:         db,
		Games:      games,
		Store:      catalog.NewStore(),
		Builder:    builder,
		Engine:     similarity.NewEngine(blendConfig),
		Analyzer:   blend.NewAnalyzer(),
		Finder:     blend.NewPathFinder(blendConfig),
		Aggregator: blend.NewAggregator(),
		config:     *blendConfig,
		log:        logger,
	}

	// Load persisted games into the store
	persisted, err := games.SelectAllGames()
	if err != nil {
		return nil, helper.NewError("load persisted games", err)
	}
	for _, game := range persisted {
		if err := blender.Store.Add(game); err != nil {
			return nil, helper.NewError("fill store", err)
		}
	}
	if len(persisted) > 0 {
		logger.Info("Loaded persisted games", slog.Int("num_games", len(persisted)))
	}

	return blender, nil
}

// Close closes the cache and database connections
func (b *Blender) Close() error {
	if b.Pairings != nil {
		if err := b.Pairings.Close(); err != nil {
			return err
		}
	}
	if b.DB != nil && b.DB.Instance != nil {
		return b.DB.Instance.Close()
	}
	return nil
}

// WithPairingCache attaches a Redis pairing cache. A nil config falls back
// to the environment.
func (b *Blender) WithPairingCache(cacheConfig *helper.CacheConfiguration) error {
	if cacheConfig == nil {
		var err error
		cacheConfig, err = helper.NewCacheConfiguration()
		if err != nil {
			return helper.NewError("create cache configuration", err)
		}
	}

	pairings, err := cache.NewPairingCache(cacheConfig)
	if err != nil {
		return helper.NewError("create pairing cache", err)
	}

	b.Pairings = pairings
	return nil
}

// SetPipeline sets the embedding pipeline for metadata enrichment
func (b *Blender) SetPipeline(pipeline *pipeline.Pipeline) {
	b.Pipeline = pipeline
}

// UseDefaultPipeline sets up the default embedding pipeline.
// This uses DefaultEmbedder with the all-MiniLM-L6-v2 model (384 dimensions).
func (b *Blender) UseDefaultPipeline() error {
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	b.Pipeline = pipeline.NewPipeline(embedder)
	return nil
}

// LoadCatalog builds metadata for the given catalog records and stores it,
// both in the database and in the in-memory store. When a pipeline is set
// the built metadata is enriched with semantic embeddings first. Records
// whose game id is already known replace the stored ones.
func (b *Blender) LoadCatalog(records []catalog.RawGame) error {
	games, err := b.Builder.BuildAll(records)
	if err != nil {
		return helper.NewError("build metadata", err)
	}

	if b.Pipeline != nil {
		if err := b.Pipeline.EnrichMetadata(games); err != nil {
			return helper.NewError("enrich metadata", err)
		}
	}

	for _, game := range games {
		if err := b.Games.InsertGame(game); err != nil {
			return helper.NewError(fmt.Sprintf("insert game %v", game.GameID), err)
		}
		if err := b.Store.Put(game); err != nil {
			return helper.NewError("fill store", err)
		}
	}

	b.log.Info("Loaded catalog", slog.Int("num_games", len(games)))

	return nil
}

// CreateBlend computes the blend of the selected games: it builds the
// compatibility graph, orders the games along the best path and aggregates
// the result. When no path can be found the selection order is kept.
func (b *Blender) CreateBlend(gameIDs []string) (*model.BlendResult, error) {
	start := time.Now()

	graph, err := blend.NewGraphBuilder(b.Engine, b.Analyzer).Build(b.Store, gameIDs)
	if err != nil {
		return nil, helper.NewError("build compatibility graph", err)
	}

	path, err := b.Finder.FindPath(graph)
	if err != nil {
		path = b.Finder.PathFromOrder(graph, graph.GameIDs())
	}

	selected := make([]*model.GameMetadata, 0, len(graph.GameIDs()))
	for _, gameID := range graph.GameIDs() {
		game, _ := graph.Game(gameID)
		selected = append(selected, game)
	}

	result := b.Aggregator.BuildResult(selected, path)

	b.log.Debug("Created blend",
		slog.String("name", result.Name),
		slog.Int("num_games", len(selected)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// FindSimilarGames ranks all other catalog games by similarity to the given
// game and returns the top limit scores
func (b *Blender) FindSimilarGames(gameID string, limit int) ([]*model.SimilarityScore, error) {
	target, ok := b.Store.Game(gameID)
	if !ok {
		return nil, helper.NewError("find similar games", fmt.Errorf("unknown game id %v", gameID))
	}

	return b.Engine.FindSimilarGames(target, b.Store.All(), limit), nil
}

// FindCompatibleGames returns all catalog games scoring at least the given
// threshold against the given game
func (b *Blender) FindCompatibleGames(gameID string, threshold float64) ([]*model.SimilarityScore, error) {
	target, ok := b.Store.Game(gameID)
	if !ok {
		return nil, helper.NewError("find compatible games", fmt.Errorf("unknown game id %v", gameID))
	}

	return b.Engine.FindCompatibleGames(target, b.Store.All(), threshold), nil
}

// Search finds stored games semantically close to a free text query,
// ranked by embedding similarity. Games without an embedding are not
// found, so the catalog should be loaded with a pipeline set.
func (b *Blender) Search(ctx context.Context, query string, limit int) ([]*model.GameMetadata, error) {
	if b.Pipeline == nil || b.Pipeline.Embedder == nil {
		return nil, helper.NewError("semantic search", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}

	// Generate embedding from query
	embeddings, err := b.Pipeline.Embedder([]string{query})
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}
	if len(embeddings) != 1 {
		return nil, helper.NewError("generate embedding", fmt.Errorf("expected one embedding, got %v", len(embeddings)))
	}

	games, err := b.Games.SelectSimilarGamesByEmbedding(embeddings[0], limit)
	if err != nil {
		return nil, helper.NewError("semantic search", err)
	}

	return games, nil
}

// SuggestPairings returns the precomputed pairings of a game, best first.
// It is empty until PrecomputePairings has run.
func (b *Blender) SuggestPairings(gameID string) ([]*model.SimilarityScore, error) {
	game, ok := b.Store.Game(gameID)
	if !ok {
		return nil, helper.NewError("suggest pairings", fmt.Errorf("unknown game id %v", gameID))
	}

	scores := make([]*model.SimilarityScore, 0, len(game.CommonPairings))
	for pairedID, score := range game.CommonPairings {
		scores = append(scores, &model.SimilarityScore{GameID: pairedID, Score: score})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].GameID < scores[j].GameID
	})

	return scores, nil
}

// PrecomputePairings fills every stored game's CommonPairings with its top
// similar games above the pairing threshold and persists them. When a
// pairing cache is attached it is consulted first and updated afterwards.
func (b *Blender) PrecomputePairings(ctx context.Context) error {
	games := b.Store.All()

	for _, game := range games {
		if b.Pairings != nil {
			cached, ok, err := b.Pairings.Get(ctx, game.GameID)
			if err != nil {
				return helper.NewError("read pairing cache", err)
			}
			if ok {
				game.CommonPairings = cached
				continue
			}
		}

		pairings := model.ScoreMap{}
		for _, score := range b.Engine.FindSimilarGames(game, games, b.config.PairingLimit) {
			if score.Score > b.config.PairingThreshold {
				pairings[score.GameID] = score.Score
			}
		}
		game.CommonPairings = pairings

		if _, err := b.Games.UpdateGamePairings(game.GameID, pairings); err != nil {
			return helper.NewError("persist pairings", err)
		}

		if b.Pairings != nil {
			if err := b.Pairings.Set(ctx, game.GameID, pairings); err != nil {
				return helper.NewError("write pairing cache", err)
			}
		}
	}

	b.log.Info("Precomputed pairings", slog.Int("num_games", len(games)))

	return nil
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (b *Blender) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	games, ok := b.Games.(*database.GamesDBHandler)
	if !ok {
		return helper.NewError("change index type", fmt.Errorf("games handler does not support index changes"))
	}
	return games.ChangeIndexType(ctx, indexType, params)
}
