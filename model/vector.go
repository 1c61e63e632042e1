package model

import "math"

// FeatureVector is a fixed-shape numeric descriptor of one catalog game.
// GenreWeights and MechanicFlags follow the orderings of StandardGenres and
// StandardMechanics, so element-wise comparison between vectors is valid.
type FeatureVector struct {
	GenreWeights          []float64 `json:"genre_weights"`
	MechanicFlags         []bool    `json:"mechanic_flags"`
	PlatformGeneration    int       `json:"platform_generation"`
	Complexity            float64   `json:"complexity"`
	ActionStrategyBalance float64   `json:"action_strategy_balance"`
	SingleMultiBalance    float64   `json:"single_multi_balance"`
	SemanticEmbedding     []float32 `json:"semantic_embedding,omitempty"`
}

// Similarity computes the compatibility of two feature vectors in [0, 1].
// When both vectors carry a semantic embedding of equal non-zero length the
// embedding dominates, blended with the structural genre and mechanic scores.
// Otherwise six structural sub-scores are combined with fixed weights.
func (v FeatureVector) Similarity(other FeatureVector) float64 {
	genreSim := v.GenreSimilarity(other)
	mechanicSim := v.MechanicSimilarity(other)

	if len(v.SemanticEmbedding) > 0 && len(v.SemanticEmbedding) == len(other.SemanticEmbedding) {
		semanticSim := CosineSimilarity(v.SemanticEmbedding, other.SemanticEmbedding)
		return clamp01(0.6*semanticSim + 0.2*genreSim + 0.2*mechanicSim)
	}

	platformSim := 1.0 - math.Abs(float64(v.PlatformGeneration-other.PlatformGeneration))/5.0
	complexitySim := 1.0 - math.Abs(v.Complexity-other.Complexity)
	actionSim := 1.0 - math.Abs(v.ActionStrategyBalance-other.ActionStrategyBalance)/2.0
	singleMultiSim := 1.0 - math.Abs(v.SingleMultiBalance-other.SingleMultiBalance)/2.0

	return clamp01(genreSim*0.3 + mechanicSim*0.3 + platformSim*0.1 + complexitySim*0.1 + actionSim*0.1 + singleMultiSim*0.1)
}

// clamp01 clamps a score to the [0, 1] range
func clamp01(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// GenreSimilarity computes the cosine similarity of the genre weight vectors,
// paired index by index. Empty vectors score a neutral 0.5, zero-magnitude
// vectors score 0.
func (v FeatureVector) GenreSimilarity(other FeatureVector) float64 {
	if len(v.GenreWeights) == 0 || len(other.GenreWeights) == 0 {
		return 0.5
	}

	n := len(v.GenreWeights)
	if len(other.GenreWeights) < n {
		n = len(other.GenreWeights)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += v.GenreWeights[i] * other.GenreWeights[i]
	}

	var normA, normB float64
	for _, w := range v.GenreWeights {
		normA += w * w
	}
	for _, w := range other.GenreWeights {
		normB += w * w
	}
	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * normB)
}

// MechanicSimilarity computes the agreement ratio of the mechanic flags,
// matching positions over the shorter vector. Empty vectors score 0.5.
func (v FeatureVector) MechanicSimilarity(other FeatureVector) float64 {
	if len(v.MechanicFlags) == 0 || len(other.MechanicFlags) == 0 {
		return 0.5
	}

	n := len(v.MechanicFlags)
	if len(other.MechanicFlags) < n {
		n = len(other.MechanicFlags)
	}

	matches := 0
	for i := 0; i < n; i++ {
		if v.MechanicFlags[i] == other.MechanicFlags[i] {
			matches++
		}
	}

	return float64(matches) / float64(n)
}

// CosineSimilarity computes the cosine similarity of two embeddings.
// Returns 0 on length mismatch, empty input or zero magnitude.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
