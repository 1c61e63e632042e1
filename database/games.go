package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/blender/helper"
	"github.com/siherrmann/blender/model"
	loadSql "github.com/siherrmann/blender/sql"
)

// GamesDBHandlerFunctions defines the interface for Games database operations.
type GamesDBHandlerFunctions interface {
	InsertGame(game *model.GameMetadata) error
	SelectGameByGameID(gameID string) (*model.GameMetadata, error)
	SelectAllGames() ([]*model.GameMetadata, error)
	SelectSimilarGamesByEmbedding(embedding []float32, limit int) ([]*model.GameMetadata, error)
	UpdateGamePairings(gameID string, pairings model.ScoreMap) (*model.GameMetadata, error)
	DeleteGameByGameID(gameID string) error
}

// GamesDBHandler handles game metadata database operations
type GamesDBHandler struct {
	db *helper.Database
}

// NewGamesDBHandler creates a new games database handler.
// It initializes the database connection and loads game-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewGamesDBHandler(db *helper.Database, embeddingDim int, force bool) (*GamesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	gamesDbHandler := &GamesDBHandler{
		db: db,
	}

	err := loadSql.LoadGamesSql(gamesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load games sql", err)
	}

	err = gamesDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized GamesDBHandler")

	return gamesDbHandler, nil
}

// CreateTable creates the 'games' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes.
func (h *GamesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init_games() function to create the table and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_games($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing games table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table games")

	return nil
}

// InsertGame inserts a game, updating the stored record when the game id already exists
func (h *GamesDBHandler) InsertGame(game *model.GameMetadata) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_game($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		game.GameID,
		game.Name,
		game.Year,
		game.PrimaryGenre,
		game.EraCategory,
		pq.Array(game.FeatureVector.GenreWeights),
		pq.Array(game.FeatureVector.MechanicFlags),
		game.FeatureVector.PlatformGeneration,
		game.FeatureVector.Complexity,
		game.FeatureVector.ActionStrategyBalance,
		game.FeatureVector.SingleMultiBalance,
		pq.Array(game.FeatureVector.SemanticEmbedding),
		pq.Array(game.MechanicTags),
		pq.Array(game.MoodTags),
		game.GenreAffinities,
		game.CommonPairings,
	)

	err := row.Scan(
		&game.RID,
		&game.GameID,
		&game.Name,
		&game.Year,
		&game.PrimaryGenre,
		&game.EraCategory,
		pq.Array(&game.FeatureVector.GenreWeights),
		pq.Array(&game.FeatureVector.MechanicFlags),
		&game.FeatureVector.PlatformGeneration,
		&game.FeatureVector.Complexity,
		&game.FeatureVector.ActionStrategyBalance,
		&game.FeatureVector.SingleMultiBalance,
		pq.Array(&game.FeatureVector.SemanticEmbedding),
		pq.Array(&game.MechanicTags),
		pq.Array(&game.MoodTags),
		&game.GenreAffinities,
		&game.CommonPairings,
		&game.CreatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectGameByGameID retrieves a game by its catalog game id
func (h *GamesDBHandler) SelectGameByGameID(gameID string) (*model.GameMetadata, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_game_by_game_id($1)`,
		gameID,
	)

	game := &model.GameMetadata{}
	err := row.Scan(
		&game.RID,
		&game.GameID,
		&game.Name,
		&game.Year,
		&game.PrimaryGenre,
		&game.EraCategory,
		pq.Array(&game.FeatureVector.GenreWeights),
		pq.Array(&game.FeatureVector.MechanicFlags),
		&game.FeatureVector.PlatformGeneration,
		&game.FeatureVector.Complexity,
		&game.FeatureVector.ActionStrategyBalance,
		&game.FeatureVector.SingleMultiBalance,
		pq.Array(&game.FeatureVector.SemanticEmbedding),
		pq.Array(&game.MechanicTags),
		pq.Array(&game.MoodTags),
		&game.GenreAffinities,
		&game.CommonPairings,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return game, nil
}

// SelectAllGames retrieves all games in insertion order
func (h *GamesDBHandler) SelectAllGames() ([]*model.GameMetadata, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_games()`,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var games []*model.GameMetadata
	for rows.Next() {
		game := &model.GameMetadata{}
		err := rows.Scan(
			&game.RID,
			&game.GameID,
			&game.Name,
			&game.Year,
			&game.PrimaryGenre,
			&game.EraCategory,
			pq.Array(&game.FeatureVector.GenreWeights),
			pq.Array(&game.FeatureVector.MechanicFlags),
			&game.FeatureVector.PlatformGeneration,
			&game.FeatureVector.Complexity,
			&game.FeatureVector.ActionStrategyBalance,
			&game.FeatureVector.SingleMultiBalance,
			pq.Array(&game.FeatureVector.SemanticEmbedding),
			pq.Array(&game.MechanicTags),
			pq.Array(&game.MoodTags),
			&game.GenreAffinities,
			&game.CommonPairings,
			&game.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		games = append(games, game)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return games, nil
}

// SelectSimilarGamesByEmbedding performs vector similarity search over the
// stored semantic embeddings. Games without an embedding are skipped.
func (h *GamesDBHandler) SelectSimilarGamesByEmbedding(embedding []float32, limit int) ([]*model.GameMetadata, error) {
	embeddingVector := pgvector.NewVector(embedding)

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_similar_games_by_embedding($1, $2)`,
		embeddingVector,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.GameMetadata
	for rows.Next() {
		game := &model.GameMetadata{}
		err := rows.Scan(
			&game.RID,
			&game.GameID,
			&game.Name,
			&game.Year,
			&game.PrimaryGenre,
			&game.EraCategory,
			pq.Array(&game.FeatureVector.GenreWeights),
			pq.Array(&game.FeatureVector.MechanicFlags),
			&game.FeatureVector.PlatformGeneration,
			&game.FeatureVector.Complexity,
			&game.FeatureVector.ActionStrategyBalance,
			&game.FeatureVector.SingleMultiBalance,
			pq.Array(&game.FeatureVector.SemanticEmbedding),
			pq.Array(&game.MechanicTags),
			pq.Array(&game.MoodTags),
			&game.GenreAffinities,
			&game.CommonPairings,
			&game.CreatedAt,
			&game.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, game)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// UpdateGamePairings replaces the stored common pairings of a game
func (h *GamesDBHandler) UpdateGamePairings(gameID string, pairings model.ScoreMap) (*model.GameMetadata, error) {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_game_pairings($1, $2)`,
		gameID,
		pairings,
	)

	game := &model.GameMetadata{}
	err := row.Scan(
		&game.RID,
		&game.GameID,
		&game.Name,
		&game.Year,
		&game.PrimaryGenre,
		&game.EraCategory,
		pq.Array(&game.FeatureVector.GenreWeights),
		pq.Array(&game.FeatureVector.MechanicFlags),
		&game.FeatureVector.PlatformGeneration,
		&game.FeatureVector.Complexity,
		&game.FeatureVector.ActionStrategyBalance,
		&game.FeatureVector.SingleMultiBalance,
		pq.Array(&game.FeatureVector.SemanticEmbedding),
		pq.Array(&game.MechanicTags),
		pq.Array(&game.MoodTags),
		&game.GenreAffinities,
		&game.CommonPairings,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return game, nil
}

// DeleteGameByGameID deletes a game by its catalog game id
func (h *GamesDBHandler) DeleteGameByGameID(gameID string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_game($1)`,
		gameID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}
