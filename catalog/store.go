package catalog

import (
	"fmt"

	"github.com/siherrmann/blender/core/similarity"
	"github.com/siherrmann/blender/model"
)

// Store is an insertion ordered, in-memory collection of game metadata.
// It is built once at start-up and read-only afterwards, so lookups need
// no locking.
type Store struct {
	order []string
	games map[string]*model.GameMetadata
}

// NewStore creates an empty metadata store
func NewStore() *Store {
	return &Store{
		order: []string{},
		games: map[string]*model.GameMetadata{},
	}
}

// Add appends a metadata record to the store.
// It fails on a nil record or a duplicate game id.
func (s *Store) Add(game *model.GameMetadata) error {
	if game == nil {
		return fmt.Errorf("game metadata must not be nil")
	}
	if _, ok := s.games[game.GameID]; ok {
		return fmt.Errorf("duplicate game id %v", game.GameID)
	}
	s.order = append(s.order, game.GameID)
	s.games[game.GameID] = game
	return nil
}

// Put adds a metadata record, replacing the stored one when the game id
// is already present. A replaced record keeps its insertion position.
func (s *Store) Put(game *model.GameMetadata) error {
	if game == nil {
		return fmt.Errorf("game metadata must not be nil")
	}
	if _, ok := s.games[game.GameID]; !ok {
		s.order = append(s.order, game.GameID)
	}
	s.games[game.GameID] = game
	return nil
}

// Game resolves a game id to its metadata record
func (s *Store) Game(gameID string) (*model.GameMetadata, bool) {
	game, ok := s.games[gameID]
	return game, ok
}

// All returns the stored records in insertion order
func (s *Store) All() []*model.GameMetadata {
	games := make([]*model.GameMetadata, 0, len(s.order))
	for _, gameID := range s.order {
		games = append(games, s.games[gameID])
	}
	return games
}

// IDs returns the stored game ids in insertion order
func (s *Store) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Len returns the number of stored records
func (s *Store) Len() int {
	return len(s.order)
}

// PrecomputePairings fills every record's CommonPairings with its top
// limit most similar games scoring strictly above the threshold. It runs
// once after the store is built, before the store is shared.
func (s *Store) PrecomputePairings(engine *similarity.Engine, limit int, threshold float64) {
	games := s.All()
	for _, game := range games {
		pairings := model.ScoreMap{}
		for _, score := range engine.FindSimilarGames(game, games, limit) {
			if score.Score > threshold {
				pairings[score.GameID] = score.Score
			}
		}
		game.CommonPairings = pairings
	}
}
