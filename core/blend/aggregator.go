package blend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siherrmann/blender/model"
)

// genreStyles maps a primary genre to its characteristic art style
var genreStyles = map[string]string{
	"Action":     "dynamic sprite animation",
	"Adventure":  "scenic backdrops",
	"RPG":        "detailed character sprites",
	"Strategy":   "top-down tactical views",
	"Puzzle":     "clean geometric shapes",
	"Platform":   "parallax scrolling layers",
	"Shooter":    "explosive particle effects",
	"Fighting":   "large expressive fighters",
	"Racing":     "pseudo-3D road scaling",
	"Sports":     "broadcast-style presentation",
	"Simulation": "diagrammatic interfaces",
	"Horror":     "low-light palettes",
}

// genreFeatures maps a primary genre to its recommended feature
var genreFeatures = map[string]string{
	"Action":     "Responsive combat with combo system",
	"Adventure":  "Inventory-driven exploration and dialogue",
	"RPG":        "Character customization system",
	"Strategy":   "Resource management layer",
	"Puzzle":     "Environmental puzzles integrated into levels",
	"Platform":   "Precision jumping with forgiving checkpoints",
	"Shooter":    "Boss battles with pattern learning",
	"Fighting":   "Unlockable fighters with distinct move sets",
	"Racing":     "Time trial and ghost race modes",
	"Sports":     "Season and tournament play",
	"Simulation": "Sandbox mode with adjustable parameters",
	"Horror":     "Limited resources to sustain tension",
}

// Aggregator merges the metadata of a blended selection into a single
// blend result. It is deterministic, identical inputs always produce
// an identical result.
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// BuildResult assembles the blend result for a selection and its path
func (a *Aggregator) BuildResult(selected []*model.GameMetadata, path *model.BlendPath) *model.BlendResult {
	if len(selected) == 0 {
		return &model.BlendResult{
			Genres:              map[string]float64{},
			Mechanics:           []string{},
			ArtStyles:           []string{},
			RecommendedFeatures: []string{},
		}
	}

	genres, genreOrder := a.mergeGenres(selected)

	avgComplexity := 0.0
	avgBalance := 0.0
	for _, game := range selected {
		avgComplexity += game.FeatureVector.Complexity
		avgBalance += game.FeatureVector.ActionStrategyBalance
	}
	avgComplexity /= float64(len(selected))
	avgBalance /= float64(len(selected))

	result := &model.BlendResult{
		Name:                  a.blendName(selected),
		Description:           a.blendDescription(selected, genres, genreOrder),
		Genres:                genres,
		Mechanics:             a.mergeMechanics(selected),
		ArtStyles:             a.artStyles(selected),
		ComplexityScore:       avgComplexity,
		ActionStrategyBalance: avgBalance,
		RecommendedFeatures:   a.recommendFeatures(genres, genreOrder, selected, avgComplexity),
	}

	if path != nil {
		result.Path = *path
		result.Synergies = path.Synergies
		result.Conflicts = path.Conflicts
	}

	return result
}

// mergeGenres sums all genre affinities into one weight map normalized
// to 1.0, remembering the order keys first appeared. Games without
// affinities contribute their primary genre with weight 1.
func (a *Aggregator) mergeGenres(selected []*model.GameMetadata) (map[string]float64, []string) {
	genres := make(map[string]float64)
	genreOrder := []string{}

	add := func(genre string, weight float64) {
		if _, ok := genres[genre]; !ok {
			genreOrder = append(genreOrder, genre)
		}
		genres[genre] += weight
	}

	for _, game := range selected {
		if len(game.GenreAffinities) > 0 {
			// Affinity keys are visited in sorted order to keep the
			// first-seen order reproducible
			keys := make([]string, 0, len(game.GenreAffinities))
			for genre := range game.GenreAffinities {
				keys = append(keys, genre)
			}
			sort.Strings(keys)
			for _, genre := range keys {
				add(genre, game.GenreAffinities[genre])
			}
		} else if game.PrimaryGenre != "" {
			add(game.PrimaryGenre, 1.0)
		}
	}

	total := 0.0
	for _, weight := range genres {
		total += weight
	}
	if total == 0 {
		return map[string]float64{}, []string{}
	}
	for genre := range genres {
		genres[genre] /= total
	}

	return genres, genreOrder
}

// mergeMechanics returns the sorted union of all mechanic tags
func (a *Aggregator) mergeMechanics(selected []*model.GameMetadata) []string {
	seen := make(map[string]bool)
	mechanics := []string{}
	for _, game := range selected {
		for _, tag := range game.MechanicTags {
			if !seen[tag] {
				seen[tag] = true
				mechanics = append(mechanics, tag)
			}
		}
	}
	sort.Strings(mechanics)
	return mechanics
}

// artStyles derives the visual identity of the blend, one base style
// from the average release year plus one style per distinct genre
func (a *Aggregator) artStyles(selected []*model.GameMetadata) []string {
	yearSum := 0
	for _, game := range selected {
		yearSum += game.Year
	}
	avgYear := yearSum / len(selected)

	styles := []string{}
	switch {
	case avgYear <= 1985:
		styles = append(styles, "8-bit pixel art")
	case avgYear <= 1991:
		styles = append(styles, "16-bit sprite work")
	default:
		styles = append(styles, "high-color 2D")
	}

	for _, game := range selected {
		if style, ok := genreStyles[game.PrimaryGenre]; ok {
			styles = append(styles, style)
		}
	}

	sort.Strings(styles)
	return dedupeSorted(styles)
}

// blendName names the blend from the first and last selected games
func (a *Aggregator) blendName(selected []*model.GameMetadata) string {
	if len(selected) == 1 {
		return selected[0].Name
	}
	if len(selected) == 2 {
		return fmt.Sprintf("%v × %v", selected[0].Name, selected[1].Name)
	}
	return fmt.Sprintf("%v meets %v (+%v)", selected[0].Name, selected[len(selected)-1].Name, len(selected)-2)
}

// blendDescription summarizes the blend around its dominant genre and
// release year span
func (a *Aggregator) blendDescription(selected []*model.GameMetadata, genres map[string]float64, genreOrder []string) string {
	dominant := "retro"
	bestWeight := 0.0
	for _, genre := range genreOrder {
		if genres[genre] > bestWeight {
			bestWeight = genres[genre]
			dominant = genre
		}
	}

	minYear := selected[0].Year
	maxYear := selected[0].Year
	for _, game := range selected[1:] {
		if game.Year < minYear {
			minYear = game.Year
		}
		if game.Year > maxYear {
			maxYear = game.Year
		}
	}

	return fmt.Sprintf(
		"A %v experience blending %v classic games from %v-%v, combining the best elements of each era",
		strings.ToLower(dominant), len(selected), minYear, maxYear,
	)
}

// recommendFeatures suggests design features from the merged genres,
// the mechanic pool and the average complexity
func (a *Aggregator) recommendFeatures(genres map[string]float64, genreOrder []string, selected []*model.GameMetadata, avgComplexity float64) []string {
	recommendations := []string{}

	for _, genre := range genreOrder {
		if genres[genre] > 0.3 {
			if feature, ok := genreFeatures[genre]; ok {
				recommendations = append(recommendations, feature)
			}
		}
	}

	hasMechanic := func(tag string) bool {
		for _, game := range selected {
			if game.HasMechanicTag(tag) {
				return true
			}
		}
		return false
	}
	if hasMechanic("Multiplayer") {
		recommendations = append(recommendations, "Two-player versus and co-op modes")
	}
	if hasMechanic("Procedural Generation") {
		recommendations = append(recommendations, "Procedurally generated layouts for replayability")
	}

	if avgComplexity > 0.7 {
		recommendations = append(recommendations, "In-depth tutorial system")
	} else if avgComplexity < 0.3 {
		recommendations = append(recommendations, "Optional challenge modes for depth")
	}

	return recommendations
}

// dedupeSorted removes adjacent duplicates from a sorted slice
func dedupeSorted(sorted []string) []string {
	deduped := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			deduped = append(deduped, s)
		}
	}
	return deduped
}
