package blend

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/siherrmann/blender/model"
)

// contradictionPairs lists mechanic tags that cannot both lead a blend
var contradictionPairs = [][2]string{
	{"Real-Time", "Turn-Based"},
}

// clashingGenres lists primary genre pairs known to pull a blend in
// opposing directions
var clashingGenres = [][2]string{
	{"Action", "Strategy"},
	{"Puzzle", "Action"},
	{"Racing", "RPG"},
}

// Analyzer produces qualitative synergy and conflict annotations for
// a pair of games. It is pure and never errors, unremarkable pairs
// simply yield empty lists.
type Analyzer struct{}

// NewAnalyzer creates a new analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// FindSynergies returns all synergies between two games
func (a *Analyzer) FindSynergies(game1 *model.GameMetadata, game2 *model.GameMetadata) []model.Synergy {
	synergies := []model.Synergy{}

	// Genre match
	if game1.PrimaryGenre != "" && game1.PrimaryGenre == game2.PrimaryGenre {
		synergies = append(synergies, model.Synergy{
			Type:        "genre_match",
			Description: fmt.Sprintf("Both games are %v games", game1.PrimaryGenre),
			Strength:    0.8,
		})
	}

	// Era synergy
	if game1.EraCategory == game2.EraCategory {
		synergies = append(synergies, model.Synergy{
			Type:        "era_synergy",
			Description: fmt.Sprintf("Both games are from the %v", game1.EraCategory),
			Strength:    0.8,
		})
	} else if math.Abs(float64(game1.Year-game2.Year)) <= 2 {
		synergies = append(synergies, model.Synergy{
			Type:        "era_synergy",
			Description: "Released within two years of each other",
			Strength:    0.6,
		})
	}

	// Platform match
	if game1.FeatureVector.PlatformGeneration == game2.FeatureVector.PlatformGeneration {
		synergies = append(synergies, model.Synergy{
			Type:        "platform_match",
			Description: fmt.Sprintf("Both target generation %v hardware", game1.FeatureVector.PlatformGeneration),
			Strength:    0.5,
		})
	}

	// Complexity harmony across different genres
	complexityDiff := math.Abs(game1.FeatureVector.Complexity - game2.FeatureVector.Complexity)
	if complexityDiff < 0.2 && game1.PrimaryGenre != game2.PrimaryGenre {
		synergies = append(synergies, model.Synergy{
			Type:        "complexity_harmony",
			Description: "Matched complexity across different genres",
			Strength:    0.7,
		})
	}

	// Shared mechanics
	shared := game1.SharedMechanicTags(game2)
	if len(shared) > 0 {
		sort.Strings(shared)
		synergies = append(synergies, model.Synergy{
			Type:        "mechanic_synergy",
			Description: fmt.Sprintf("Both games feature %v", strings.Join(shared, ", ")),
			Strength:    0.6,
		})
	}

	return synergies
}

// FindConflicts returns all conflicts between two games, each with a
// resolution hint
func (a *Analyzer) FindConflicts(game1 *model.GameMetadata, game2 *model.GameMetadata) []model.Conflict {
	conflicts := []model.Conflict{}

	// Complexity mismatch, describing the more complex game first
	complexityDiff := math.Abs(game1.FeatureVector.Complexity - game2.FeatureVector.Complexity)
	if complexityDiff > 0.5 {
		moreComplex, lessComplex := game1.Name, game2.Name
		if game2.FeatureVector.Complexity > game1.FeatureVector.Complexity {
			moreComplex, lessComplex = game2.Name, game1.Name
		}
		conflicts = append(conflicts, model.Conflict{
			Type:           "complexity_mismatch",
			Description:    fmt.Sprintf("%v is much more complex than %v", moreComplex, lessComplex),
			Severity:       complexityDiff,
			ResolutionHint: "Consider adjusting difficulty curves or adding tutorial layers",
		})
	}

	// Pacing clash on the action/strategy axis
	balanceDiff := math.Abs(game1.FeatureVector.ActionStrategyBalance - game2.FeatureVector.ActionStrategyBalance)
	if balanceDiff > 1.0 {
		conflicts = append(conflicts, model.Conflict{
			Type:           "pacing_clash",
			Description:    "One game is action-focused while the other is strategy-focused",
			Severity:       balanceDiff / 2.0,
			ResolutionHint: "Blend by creating strategic action sequences or real-time strategy elements",
		})
	}

	// Era gap
	if math.Abs(float64(game1.Year-game2.Year)) > 10 {
		conflicts = append(conflicts, model.Conflict{
			Type:           "era_gap",
			Description:    "More than a decade separates the releases",
			Severity:       0.4,
			ResolutionHint: "Anchor the visual identity in one era and reference the other",
		})
	}

	// Genre clash
	for _, pair := range clashingGenres {
		if (game1.PrimaryGenre == pair[0] && game2.PrimaryGenre == pair[1]) ||
			(game1.PrimaryGenre == pair[1] && game2.PrimaryGenre == pair[0]) {
			conflicts = append(conflicts, model.Conflict{
				Type:           "genre_clash",
				Description:    fmt.Sprintf("%v and %v pull in different directions", game1.PrimaryGenre, game2.PrimaryGenre),
				Severity:       0.6,
				ResolutionHint: "Favor the higher-complexity system and borrow accents from the other",
			})
			break
		}
	}

	// Contradicting mechanics
	for _, pair := range contradictionPairs {
		if (game1.HasMechanicTag(pair[0]) && game2.HasMechanicTag(pair[1])) ||
			(game1.HasMechanicTag(pair[1]) && game2.HasMechanicTag(pair[0])) {
			conflicts = append(conflicts, model.Conflict{
				Type:           "mechanic_contradiction",
				Description:    fmt.Sprintf("%v and %v cannot both lead the design", pair[0], pair[1]),
				Severity:       0.5,
				ResolutionHint: "Offer both modes and let the player choose",
			})
			break
		}
	}

	return conflicts
}
