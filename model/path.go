package model

// BlendPath is an ordering of the selected games together with the summed
// edge weight along consecutive pairs and the annotations collected on the way
type BlendPath struct {
	GameIDs            []string   `json:"game_ids"`
	TotalCompatibility float64    `json:"total_compatibility"`
	Synergies          []Synergy  `json:"synergies,omitempty"`
	Conflicts          []Conflict `json:"conflicts,omitempty"`
}
