package similarity

import (
	"math"
	"sort"

	"github.com/siherrmann/blender/model"
)

// Engine scores pairwise game compatibility from feature vector,
// era and complexity signals with configurable weights
type Engine struct {
	GenreWeight      float64
	MechanicWeight   float64
	EraWeight        float64
	ComplexityWeight float64
}

// NewEngine creates a new similarity engine from the given config
func NewEngine(config *model.BlendConfig) *Engine {
	return &Engine{
		GenreWeight:      config.GenreWeight,
		MechanicWeight:   config.MechanicWeight,
		EraWeight:        config.EraWeight,
		ComplexityWeight: config.ComplexityWeight,
	}
}

// ComputeSimilarity scores two games in [0, 1]. The feature vector
// covers the genre, mechanic and complexity components, the era
// component is scored separately from release years.
func (e *Engine) ComputeSimilarity(a *model.GameMetadata, b *model.GameMetadata) float64 {
	totalWeight := e.GenreWeight + e.MechanicWeight + e.EraWeight + e.ComplexityWeight
	if totalWeight == 0 {
		return 0
	}

	vectorSim := a.FeatureVector.Similarity(b.FeatureVector)
	eraSim := e.EraSimilarity(a, b)
	structuralWeight := e.GenreWeight + e.MechanicWeight + e.ComplexityWeight

	return (vectorSim*structuralWeight + eraSim*e.EraWeight) / totalWeight
}

// EraSimilarity scores how close two games are in time. Games in the
// same era category count as fully aligned, otherwise the score falls
// off with the gap between release years.
func (e *Engine) EraSimilarity(a *model.GameMetadata, b *model.GameMetadata) float64 {
	if a.EraCategory == b.EraCategory {
		return 1.0
	}

	yearDiff := math.Abs(float64(a.Year - b.Year))
	switch {
	case yearDiff <= 2:
		return 0.9
	case yearDiff <= 5:
		return 0.6
	case yearDiff <= 8:
		return 0.3
	default:
		return 0.1
	}
}

// FindSimilarGames ranks all candidates by similarity to the target
// and returns at most limit scores. The target itself is excluded.
func (e *Engine) FindSimilarGames(target *model.GameMetadata, candidates []*model.GameMetadata, limit int) []*model.SimilarityScore {
	results := make([]*model.SimilarityScore, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.GameID == target.GameID {
			continue
		}
		results = append(results, &model.SimilarityScore{
			GameID: candidate.GameID,
			Score:  e.ComputeSimilarity(target, candidate),
		})
	}

	// Sort by score, keeping candidate order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	// Limit to top results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// FindCompatibleGames returns all candidates scoring at or above the
// threshold against the target, ranked by score. The target itself is
// excluded.
func (e *Engine) FindCompatibleGames(target *model.GameMetadata, candidates []*model.GameMetadata, threshold float64) []*model.SimilarityScore {
	results := make([]*model.SimilarityScore, 0)
	for _, candidate := range candidates {
		if candidate.GameID == target.GameID {
			continue
		}
		score := e.ComputeSimilarity(target, candidate)
		if score >= threshold {
			results = append(results, &model.SimilarityScore{
				GameID: candidate.GameID,
				Score:  score,
			})
		}
	}

	// Sort by score, keeping candidate order on ties
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
