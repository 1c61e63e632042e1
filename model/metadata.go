package model

import (
	"time"

	"github.com/google/uuid"
)

// GameMetadata is the catalog record of one game, immutable once built
type GameMetadata struct {
	RID             uuid.UUID     `json:"rid,omitempty"`
	GameID          string        `json:"game_id"`
	Name            string        `json:"name"`
	Year            int           `json:"year"`
	PrimaryGenre    string        `json:"primary_genre,omitempty"`
	EraCategory     string        `json:"era_category"`
	FeatureVector   FeatureVector `json:"feature_vector"`
	MechanicTags    []string      `json:"mechanic_tags,omitempty"`
	MoodTags        []string      `json:"mood_tags,omitempty"`
	GenreAffinities ScoreMap      `json:"genre_affinities,omitempty"`
	CommonPairings  ScoreMap      `json:"common_pairings,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	// Results
	Similarity float64 `json:"similarity,omitempty"`
}

// HasMechanicTag reports whether the game carries the given mechanic tag
func (m *GameMetadata) HasMechanicTag(tag string) bool {
	for _, t := range m.MechanicTags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedMechanicTags returns the mechanic tags both games carry,
// in the order of this game's tags
func (m *GameMetadata) SharedMechanicTags(other *GameMetadata) []string {
	var shared []string
	for _, t := range m.MechanicTags {
		if other.HasMechanicTag(t) {
			shared = append(shared, t)
		}
	}
	return shared
}
