package pipeline

import (
	"fmt"
	"strings"

	"github.com/siherrmann/blender/model"
)

// EmbedFunc generates one embedding per input text
type EmbedFunc func(texts []string) ([][]float32, error)

// Pipeline enriches game metadata with semantic embeddings
type Pipeline struct {
	Embedder EmbedFunc
}

// NewPipeline creates a new enrichment pipeline
func NewPipeline(embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Embedder: embedder,
	}
}

// EnrichMetadata embeds the profile text of every game and stores the
// result on its feature vector. Games are embedded in one batch.
func (p *Pipeline) EnrichMetadata(games []*model.GameMetadata) error {
	if p.Embedder == nil {
		return fmt.Errorf("no embedder configured")
	}
	if len(games) == 0 {
		return nil
	}

	texts := make([]string, len(games))
	for i, game := range games {
		texts[i] = ProfileText(game)
	}

	embeddings, err := p.Embedder(texts)
	if err != nil {
		return fmt.Errorf("failed to embed game profiles: %w", err)
	}
	if len(embeddings) != len(games) {
		return fmt.Errorf("expected %v embeddings, got %v", len(games), len(embeddings))
	}

	for i, game := range games {
		game.FeatureVector.SemanticEmbedding = embeddings[i]
	}

	return nil
}

// ProfileText builds the text that represents a game for embedding,
// combining name, year, genre, mechanics and mood
func ProfileText(game *model.GameMetadata) string {
	parts := []string{fmt.Sprintf("%v (%v)", game.Name, game.Year)}
	if game.PrimaryGenre != "" {
		parts = append(parts, fmt.Sprintf("%v game", game.PrimaryGenre))
	}
	if len(game.MechanicTags) > 0 {
		parts = append(parts, "featuring "+strings.Join(game.MechanicTags, ", "))
	}
	if len(game.MoodTags) > 0 {
		parts = append(parts, "mood "+strings.Join(game.MoodTags, ", "))
	}
	return strings.Join(parts, ". ")
}
