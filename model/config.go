package model

// BlendConfig represents configuration for similarity scoring and path search
type BlendConfig struct {
	// Similarity engine weights, normalized by their sum
	GenreWeight      float64 `json:"genre_weight"`
	MechanicWeight   float64 `json:"mechanic_weight"`
	EraWeight        float64 `json:"era_weight"`
	ComplexityWeight float64 `json:"complexity_weight"`

	// Path search parameters
	ExhaustiveSearchLimit int `json:"exhaustive_search_limit"` // Max selection size for full permutation search
	TwoOptMaxPasses       int `json:"two_opt_max_passes"`      // Pass cap for 2-opt improvement

	// Pairing precompute parameters
	PairingLimit     int     `json:"pairing_limit"`     // Max pairings kept per game
	PairingThreshold float64 `json:"pairing_threshold"` // Min score for a pairing to be kept
}

// DefaultBlendConfig returns a sensible default configuration
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{
		GenreWeight:           0.3,
		MechanicWeight:        0.3,
		EraWeight:             0.2,
		ComplexityWeight:      0.2,
		ExhaustiveSearchLimit: 8,
		TwoOptMaxPasses:       32,
		PairingLimit:          10,
		PairingThreshold:      0.7,
	}
}
