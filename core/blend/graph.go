package blend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/siherrmann/blender/core/similarity"
	"github.com/siherrmann/blender/model"
)

var (
	// ErrInsufficientSelection is returned when fewer than two games are selected
	ErrInsufficientSelection = errors.New("blend requires at least two games")
	// ErrUnknownGameID is returned when a selected game id has no metadata record
	ErrUnknownGameID = errors.New("unknown game id")
)

// GameSource resolves game ids to their metadata
type GameSource interface {
	Game(gameID string) (*model.GameMetadata, bool)
}

// CompatibilityGraph is a complete weighted graph over a selection of
// games. Every unordered pair carries a similarity weight plus the
// synergies and conflicts found by the analyzer.
type CompatibilityGraph struct {
	gameIDs []string
	games   map[string]*model.GameMetadata
	edges   map[string]*model.CompatibilityEdge
}

// GraphBuilder builds compatibility graphs over game selections
type GraphBuilder struct {
	engine   *similarity.Engine
	analyzer *Analyzer
}

// NewGraphBuilder creates a new graph builder
func NewGraphBuilder(engine *similarity.Engine, analyzer *Analyzer) *GraphBuilder {
	return &GraphBuilder{
		engine:   engine,
		analyzer: analyzer,
	}
}

// Build constructs the complete compatibility graph for the selected
// game ids. Duplicate ids collapse to their first occurrence. It fails
// if fewer than two distinct games are selected or if any id is not
// resolvable through the source.
func (b *GraphBuilder) Build(source GameSource, gameIDs []string) (*CompatibilityGraph, error) {
	uniqueIDs := make([]string, 0, len(gameIDs))
	seen := make(map[string]bool)
	for _, gameID := range gameIDs {
		if seen[gameID] {
			continue
		}
		seen[gameID] = true
		uniqueIDs = append(uniqueIDs, gameID)
	}

	if len(uniqueIDs) < 2 {
		return nil, ErrInsufficientSelection
	}

	games := make(map[string]*model.GameMetadata, len(uniqueIDs))
	for _, gameID := range uniqueIDs {
		game, ok := source.Game(gameID)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownGameID, gameID)
		}
		games[gameID] = game
	}

	// Compute every unordered pair
	edges := make(map[string]*model.CompatibilityEdge)
	for i := 0; i < len(uniqueIDs); i++ {
		for j := i + 1; j < len(uniqueIDs); j++ {
			gameA := games[uniqueIDs[i]]
			gameB := games[uniqueIDs[j]]

			edge := &model.CompatibilityEdge{
				SourceID:  gameA.GameID,
				TargetID:  gameB.GameID,
				Weight:    b.engine.ComputeSimilarity(gameA, gameB),
				Synergies: b.analyzer.FindSynergies(gameA, gameB),
				Conflicts: b.analyzer.FindConflicts(gameA, gameB),
			}
			if edge.TargetID < edge.SourceID {
				edge.SourceID, edge.TargetID = edge.TargetID, edge.SourceID
			}
			edges[edgeKey(gameA.GameID, gameB.GameID)] = edge
		}
	}

	return &CompatibilityGraph{
		gameIDs: uniqueIDs,
		games:   games,
		edges:   edges,
	}, nil
}

// edgeKey returns the canonical key for an unordered pair of game ids
func edgeKey(a string, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// GameIDs returns the selected game ids in selection order
func (g *CompatibilityGraph) GameIDs() []string {
	gameIDs := make([]string, len(g.gameIDs))
	copy(gameIDs, g.gameIDs)
	return gameIDs
}

// Game returns the metadata of a game in the graph
func (g *CompatibilityGraph) Game(gameID string) (*model.GameMetadata, bool) {
	game, ok := g.games[gameID]
	return game, ok
}

// Edge returns the compatibility edge between two games
func (g *CompatibilityGraph) Edge(a string, b string) (*model.CompatibilityEdge, bool) {
	edge, ok := g.edges[edgeKey(a, b)]
	return edge, ok
}

// Weight returns the edge weight between two games, 0 if no edge exists
func (g *CompatibilityGraph) Weight(a string, b string) float64 {
	edge, ok := g.edges[edgeKey(a, b)]
	if !ok {
		return 0
	}
	return edge.Weight
}

// Neighbors returns all other game ids ranked by edge weight, ties
// broken by ascending game id
func (g *CompatibilityGraph) Neighbors(gameID string) []string {
	if _, ok := g.games[gameID]; !ok {
		return nil
	}

	neighbors := make([]string, 0, len(g.gameIDs)-1)
	for _, other := range g.gameIDs {
		if other != gameID {
			neighbors = append(neighbors, other)
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		wi := g.Weight(gameID, neighbors[i])
		wj := g.Weight(gameID, neighbors[j])
		if wi != wj {
			return wi > wj
		}
		return neighbors[i] < neighbors[j]
	})

	return neighbors
}

// Edges returns all edges sorted by source and target id
func (g *CompatibilityGraph) Edges() []*model.CompatibilityEdge {
	edges := make([]*model.CompatibilityEdge, 0, len(g.edges))
	for _, edge := range g.edges {
		edges = append(edges, edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].SourceID != edges[j].SourceID {
			return edges[i].SourceID < edges[j].SourceID
		}
		return edges[i].TargetID < edges[j].TargetID
	})
	return edges
}
