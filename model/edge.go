package model

// Synergy is a qualitative note describing complementary traits between two games
type Synergy struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
}

// Conflict is a qualitative note describing contradictory traits between two
// games, carrying a suggested resolution
type Conflict struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Severity       float64 `json:"severity"`
	ResolutionHint string  `json:"resolution_hint"`
}

// CompatibilityEdge connects two selected games with their similarity weight
// and the derived synergy/conflict annotations. Edges are undirected; SourceID
// is always the lexicographically smaller game id.
type CompatibilityEdge struct {
	SourceID  string     `json:"source_id"`
	TargetID  string     `json:"target_id"`
	Weight    float64    `json:"weight"`
	Synergies []Synergy  `json:"synergies,omitempty"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}
