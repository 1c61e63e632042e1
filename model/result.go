package model

// SimilarityScore pairs a game id with its computed similarity to a target
type SimilarityScore struct {
	GameID string  `json:"game_id"`
	Score  float64 `json:"score"`
}

// BlendResult is the aggregated profile of a blend of two or more games.
// It is a pure function of the selection: identical inputs produce identical
// results, so it carries no timestamps or generated ids.
type BlendResult struct {
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Path                  BlendPath          `json:"path"`
	Genres                map[string]float64 `json:"genres"`
	Mechanics             []string           `json:"mechanics"`
	ArtStyles             []string           `json:"art_styles"`
	ComplexityScore       float64            `json:"complexity_score"`
	ActionStrategyBalance float64            `json:"action_strategy_balance"`
	Synergies             []Synergy          `json:"synergies,omitempty"`
	Conflicts             []Conflict         `json:"conflicts,omitempty"`
	RecommendedFeatures   []string           `json:"recommended_features,omitempty"`
}

// BlendExport is the flattened view of a BlendResult handed to a downstream
// generation pipeline
type BlendExport struct {
	SourceGameIDs         []string           `json:"source_game_ids"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Genres                map[string]float64 `json:"genres"`
	Mechanics             []string           `json:"mechanics"`
	ArtStyles             []string           `json:"art_styles"`
	ComplexityScore       float64            `json:"complexity_score"`
	ActionStrategyBalance float64            `json:"action_strategy_balance"`
	RecommendedFeatures   []string           `json:"recommended_features"`
}

// Export flattens the result for the downstream generation pipeline
func (r *BlendResult) Export() *BlendExport {
	return &BlendExport{
		SourceGameIDs:         r.Path.GameIDs,
		Name:                  r.Name,
		Description:           r.Description,
		Genres:                r.Genres,
		Mechanics:             r.Mechanics,
		ArtStyles:             r.ArtStyles,
		ComplexityScore:       r.ComplexityScore,
		ActionStrategyBalance: r.ActionStrategyBalance,
		RecommendedFeatures:   r.RecommendedFeatures,
	}
}
