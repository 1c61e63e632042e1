package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureVectorSimilarity(t *testing.T) {
	t.Run("Identical vectors have similarity 1", func(t *testing.T) {
		vector := FeatureVector{
			GenreWeights:          []float64{1.0, 0.0, 0.3},
			MechanicFlags:         []bool{true, false, true},
			PlatformGeneration:    2,
			Complexity:            0.5,
			ActionStrategyBalance: 0.4,
			SingleMultiBalance:    -0.2,
		}
		similarity := vector.Similarity(vector)
		assert.InDelta(t, 1.0, similarity, 1e-9, "Expected identical vectors to have similarity 1.0, got %v", similarity)
	})

	t.Run("Similarity is symmetric", func(t *testing.T) {
		a := FeatureVector{
			GenreWeights:          []float64{1.0, 0.0, 0.0},
			MechanicFlags:         []bool{true, false, true},
			PlatformGeneration:    1,
			Complexity:            0.4,
			ActionStrategyBalance: 0.8,
			SingleMultiBalance:    -1.0,
		}
		b := FeatureVector{
			GenreWeights:          []float64{0.8, 0.2, 0.0},
			MechanicFlags:         []bool{true, false, false},
			PlatformGeneration:    2,
			Complexity:            0.6,
			ActionStrategyBalance: 0.2,
			SingleMultiBalance:    -0.5,
		}
		assert.InDelta(t, a.Similarity(b), b.Similarity(a), 1e-9, "Expected similarity to be symmetric")
	})

	t.Run("Similar games score above 0.5", func(t *testing.T) {
		a := FeatureVector{
			GenreWeights:          []float64{1.0, 0.0, 0.0},
			MechanicFlags:         []bool{true, false, true},
			PlatformGeneration:    2,
			Complexity:            0.4,
			ActionStrategyBalance: 0.8,
			SingleMultiBalance:    -1.0,
		}
		b := FeatureVector{
			GenreWeights:          []float64{0.8, 0.2, 0.0},
			MechanicFlags:         []bool{true, false, false},
			PlatformGeneration:    2,
			Complexity:            0.4,
			ActionStrategyBalance: 0.8,
			SingleMultiBalance:    -1.0,
		}
		similarity := a.Similarity(b)
		assert.Greater(t, similarity, 0.5, "Expected similar games to score above 0.5, got %v", similarity)
		assert.Less(t, similarity, 1.0, "Expected non-identical games to score below 1.0, got %v", similarity)
	})

	t.Run("Similarity stays in unit range for dissimilar vectors", func(t *testing.T) {
		a := FeatureVector{
			GenreWeights:          []float64{1.0, 0.0},
			MechanicFlags:         []bool{true, true, true},
			PlatformGeneration:    1,
			Complexity:            0.2,
			ActionStrategyBalance: 1.0,
			SingleMultiBalance:    -1.0,
		}
		b := FeatureVector{
			GenreWeights:          []float64{0.0, 1.0},
			MechanicFlags:         []bool{false, false, false},
			PlatformGeneration:    5,
			Complexity:            1.0,
			ActionStrategyBalance: -1.0,
			SingleMultiBalance:    1.0,
		}
		similarity := a.Similarity(b)
		assert.GreaterOrEqual(t, similarity, 0.0, "Expected similarity to stay at or above 0, got %v", similarity)
		assert.LessOrEqual(t, similarity, 1.0, "Expected similarity to stay at or below 1, got %v", similarity)
	})

	t.Run("Matching embeddings dominate structural differences", func(t *testing.T) {
		a := FeatureVector{
			GenreWeights:       []float64{1.0, 0.0},
			MechanicFlags:      []bool{true, false},
			SemanticEmbedding:  []float32{0.5, 0.5, 0.0},
			PlatformGeneration: 1,
		}
		b := FeatureVector{
			GenreWeights:       []float64{0.0, 1.0},
			MechanicFlags:      []bool{false, true},
			SemanticEmbedding:  []float32{0.5, 0.5, 0.0},
			PlatformGeneration: 5,
		}
		// 0.6*1.0 for the embeddings, genre and mechanic contribute 0 each.
		similarity := a.Similarity(b)
		assert.InDelta(t, 0.6, similarity, 1e-9, "Expected matching embeddings to score 0.6 despite structural mismatch, got %v", similarity)
	})

	t.Run("Orthogonal embeddings with empty structure score 0.2", func(t *testing.T) {
		a := FeatureVector{SemanticEmbedding: []float32{1.0, 0.0}}
		b := FeatureVector{SemanticEmbedding: []float32{0.0, 1.0}}
		// Genre and mechanic fall back to 0.5 each, embeddings contribute 0.
		similarity := a.Similarity(b)
		assert.InDelta(t, 0.2, similarity, 1e-9, "Expected orthogonal embeddings with empty structure to score 0.2, got %v", similarity)
	})

	t.Run("Mismatched embedding lengths fall back to structural comparison", func(t *testing.T) {
		a := FeatureVector{
			GenreWeights:      []float64{1.0},
			MechanicFlags:     []bool{true},
			SemanticEmbedding: []float32{1.0, 0.0},
		}
		b := FeatureVector{
			GenreWeights:      []float64{1.0},
			MechanicFlags:     []bool{true},
			SemanticEmbedding: []float32{1.0, 0.0, 0.0},
		}
		similarity := a.Similarity(b)
		assert.InDelta(t, 1.0, similarity, 1e-9, "Expected structural fallback on embedding length mismatch, got %v", similarity)
	})
}

func TestFeatureVectorGenreSimilarity(t *testing.T) {
	t.Run("Empty genre weights score neutral 0.5", func(t *testing.T) {
		a := FeatureVector{GenreWeights: []float64{}}
		b := FeatureVector{GenreWeights: []float64{1.0, 0.0}}
		assert.Equal(t, 0.5, a.GenreSimilarity(b), "Expected empty genre weights to score 0.5")
		assert.Equal(t, 0.5, b.GenreSimilarity(a), "Expected empty genre weights to score 0.5")
	})

	t.Run("Zero magnitude weights score 0", func(t *testing.T) {
		a := FeatureVector{GenreWeights: []float64{0.0, 0.0}}
		b := FeatureVector{GenreWeights: []float64{1.0, 0.0}}
		assert.Equal(t, 0.0, a.GenreSimilarity(b), "Expected zero magnitude genre weights to score 0")
	})

	t.Run("Overlapping genre weights score their cosine", func(t *testing.T) {
		a := FeatureVector{GenreWeights: []float64{1.0, 0.0, 0.0}}
		b := FeatureVector{GenreWeights: []float64{0.8, 0.2, 0.0}}
		similarity := a.GenreSimilarity(b)
		assert.InDelta(t, 0.9701, similarity, 1e-4, "Expected genre cosine near 0.9701, got %v", similarity)
	})

	t.Run("Different length weights compare over the shorter vector", func(t *testing.T) {
		a := FeatureVector{GenreWeights: []float64{1.0}}
		b := FeatureVector{GenreWeights: []float64{1.0, 1.0}}
		similarity := a.GenreSimilarity(b)
		// Dot product runs over one dimension, norms over the full vectors.
		assert.InDelta(t, 1.0/1.4142, similarity, 1e-4, "Expected cosine over the shorter vector, got %v", similarity)
	})
}

func TestFeatureVectorMechanicSimilarity(t *testing.T) {
	t.Run("Empty mechanic flags score neutral 0.5", func(t *testing.T) {
		a := FeatureVector{MechanicFlags: []bool{}}
		b := FeatureVector{MechanicFlags: []bool{true, false}}
		assert.Equal(t, 0.5, a.MechanicSimilarity(b), "Expected empty mechanic flags to score 0.5")
	})

	t.Run("Agreement ratio over the shorter vector", func(t *testing.T) {
		a := FeatureVector{MechanicFlags: []bool{true, false, true}}
		b := FeatureVector{MechanicFlags: []bool{true, false, false}}
		similarity := a.MechanicSimilarity(b)
		assert.InDelta(t, 2.0/3.0, similarity, 1e-9, "Expected two of three flags to agree, got %v", similarity)
	})

	t.Run("Full agreement scores 1", func(t *testing.T) {
		a := FeatureVector{MechanicFlags: []bool{true, false}}
		b := FeatureVector{MechanicFlags: []bool{true, false}}
		assert.Equal(t, 1.0, a.MechanicSimilarity(b), "Expected full mechanic agreement to score 1.0")
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("Identical embeddings score 1", func(t *testing.T) {
		similarity := CosineSimilarity([]float32{0.5, 0.5, 0.0}, []float32{0.5, 0.5, 0.0})
		assert.InDelta(t, 1.0, similarity, 1e-6, "Expected identical embeddings to score 1.0, got %v", similarity)
	})

	t.Run("Orthogonal embeddings score 0", func(t *testing.T) {
		similarity := CosineSimilarity([]float32{1.0, 0.0}, []float32{0.0, 1.0})
		assert.InDelta(t, 0.0, similarity, 1e-6, "Expected orthogonal embeddings to score 0, got %v", similarity)
	})

	t.Run("Length mismatch scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{1.0, 0.0}, []float32{1.0}), "Expected length mismatch to score 0")
	})

	t.Run("Empty embeddings score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{}, []float32{}), "Expected empty embeddings to score 0")
	})

	t.Run("Zero magnitude scores 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{0.0, 0.0}, []float32{1.0, 0.0}), "Expected zero magnitude to score 0")
	})
}
