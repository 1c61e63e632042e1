package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/siherrmann/blender/model"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var rawGameSchema string

// RawGame is one raw catalog record before metadata inference
type RawGame struct {
	GUID      string   `json:"guid"`
	Name      string   `json:"name"`
	Year      int      `json:"year"`
	Genre     string   `json:"genre,omitempty"`
	Deck      string   `json:"deck,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	Developer string   `json:"developer,omitempty"`
}

// genreAliases maps catalog genre spellings onto StandardGenres names
var genreAliases = map[string]string{
	"platformer":   "Platform",
	"role-playing": "RPG",
}

type genreBoost struct {
	Genre  string
	Weight float64
}

// relatedGenres adds secondary weight for genres that commonly overlap
// with the declared one
var relatedGenres = map[string][]genreBoost{
	"Action":   {{"Shooter", 0.4}, {"Platform", 0.3}},
	"RPG":      {{"Adventure", 0.5}},
	"Platform": {{"Action", 0.3}},
}

// genreMechanics lists the standard mechanics implied by each genre
var genreMechanics = map[string][]string{
	"Action":     {"Combat", "Real-Time"},
	"Adventure":  {"Exploration", "Story Choices"},
	"RPG":        {"Character Progression", "Exploration", "Story Choices"},
	"Strategy":   {"Resource Management", "Turn-Based"},
	"Puzzle":     {"Puzzle Solving"},
	"Platform":   {"Platform Jumping", "Collection"},
	"Shooter":    {"Combat", "Real-Time"},
	"Fighting":   {"Combat", "Multiplayer", "Real-Time"},
	"Racing":     {"Real-Time", "Time Pressure"},
	"Sports":     {"Multiplayer", "Real-Time"},
	"Simulation": {"Resource Management"},
	"Horror":     {"Exploration", "Stealth"},
}

// complexityBase is the per-genre starting complexity, raised by the era
// modifier in complexity. Unlisted genres start at 0.5.
var complexityBase = map[string]float64{
	"Strategy":   0.8,
	"RPG":        0.8,
	"Simulation": 0.8,
	"Adventure":  0.6,
	"Fighting":   0.6,
	"Puzzle":     0.5,
	"Action":     0.4,
	"Platform":   0.4,
	"Shooter":    0.4,
	"Sports":     0.3,
	"Racing":     0.3,
}

// actionStrategyBase places each genre on the action/strategy axis,
// positive leaning action, negative leaning strategy
var actionStrategyBase = map[string]float64{
	"Action":     0.8,
	"Shooter":    0.8,
	"Platform":   0.6,
	"Racing":     0.6,
	"Fighting":   0.6,
	"Sports":     0.4,
	"Adventure":  0.0,
	"RPG":        -0.2,
	"Puzzle":     -0.4,
	"Simulation": -0.6,
	"Strategy":   -0.8,
}

// singleMultiBase places each genre on the single/multiplayer axis,
// positive leaning multiplayer. Unlisted genres default to -0.5.
var singleMultiBase = map[string]float64{
	"Fighting":  0.8,
	"Sports":    0.8,
	"Racing":    0.4,
	"Action":    -0.4,
	"Platform":  -0.4,
	"RPG":       -0.8,
	"Adventure": -0.8,
	"Strategy":  -0.8,
}

// genreMoods lists the mood tags implied by each genre
var genreMoods = map[string][]string{
	"Action":     {"Fast-paced", "Intense"},
	"Adventure":  {"Exploratory", "Narrative"},
	"RPG":        {"Epic", "Immersive"},
	"Strategy":   {"Thoughtful", "Tactical"},
	"Puzzle":     {"Relaxing", "Cerebral"},
	"Platform":   {"Cheerful", "Challenging"},
	"Shooter":    {"Adrenaline", "Competitive"},
	"Fighting":   {"Competitive", "Intense"},
	"Racing":     {"Speed", "Thrilling"},
	"Sports":     {"Competitive", "Energetic"},
	"Simulation": {"Methodical", "Relaxing"},
	"Horror":     {"Atmospheric", "Tense"},
}

// platformGenerations maps recognizable platform names to hardware
// generations. A record's generation is the max over its platforms.
var platformGenerations = []struct {
	Keyword    string
	Generation int
}{
	{"Arcade", 1},
	{"NES", 2},
	{"Master System", 2},
	{"Game Boy", 2},
	{"Genesis", 3},
	{"TurboGrafx", 3},
	{"SNES", 3},
	{"PlayStation", 4},
	{"Saturn", 4},
}

// MetadataBuilder infers full metadata records from raw catalog data
type MetadataBuilder struct {
	schema *gojsonschema.Schema
}

// NewMetadataBuilder creates a builder with the catalog record schema compiled
func NewMetadataBuilder() (*MetadataBuilder, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(rawGameSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalog schema: %w", err)
	}
	return &MetadataBuilder{schema: schema}, nil
}

// ValidateRecord checks one raw JSON record against the catalog schema.
// All schema violations are joined into a single error.
func (b *MetadataBuilder) ValidateRecord(raw []byte) error {
	result, err := b.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate record: %w", err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return fmt.Errorf("invalid catalog record: %v", strings.Join(violations, "; "))
	}
	return nil
}

// ParseCatalog validates and parses a JSON array of raw catalog records
func (b *MetadataBuilder) ParseCatalog(data []byte) ([]RawGame, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	records := make([]RawGame, 0, len(rawRecords))
	for i, raw := range rawRecords {
		if err := b.ValidateRecord(raw); err != nil {
			return nil, fmt.Errorf("record %v: %w", i, err)
		}
		var record RawGame
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("record %v: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// LoadCatalogFile reads and parses a catalog file holding a JSON array of records
func (b *MetadataBuilder) LoadCatalogFile(path string) ([]RawGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return b.ParseCatalog(data)
}

// BuildMetadata infers a full metadata record from one raw catalog record.
// The record is expected to have passed ValidateRecord.
func (b *MetadataBuilder) BuildMetadata(record RawGame) (*model.GameMetadata, error) {
	if record.GUID == "" {
		return nil, fmt.Errorf("missing game guid")
	}
	if record.Name == "" {
		return nil, fmt.Errorf("missing game name")
	}

	genre, genreIdx := canonicalGenre(record.Genre)
	vector := buildFeatureVector(record, genre, genreIdx)

	return &model.GameMetadata{
		GameID:          record.GUID,
		Name:            record.Name,
		Year:            record.Year,
		PrimaryGenre:    genre,
		EraCategory:     model.EraCategory(record.Year),
		FeatureVector:   vector,
		MechanicTags:    mechanicTags(vector.MechanicFlags),
		MoodTags:        moodTags(genre, record.Year),
		GenreAffinities: genreAffinities(vector.GenreWeights),
		CommonPairings:  model.ScoreMap{},
	}, nil
}

// BuildAll builds metadata for every record, preserving catalog order
func (b *MetadataBuilder) BuildAll(records []RawGame) ([]*model.GameMetadata, error) {
	games := make([]*model.GameMetadata, 0, len(records))
	for _, record := range records {
		game, err := b.BuildMetadata(record)
		if err != nil {
			return nil, fmt.Errorf("record %v: %w", record.GUID, err)
		}
		games = append(games, game)
	}
	return games, nil
}

// canonicalGenre maps a declared catalog genre onto StandardGenres,
// resolving aliases case-insensitively. Unknown genres are returned as
// declared, with index -1.
func canonicalGenre(genre string) (string, int) {
	trimmed := strings.TrimSpace(genre)
	if alias, ok := genreAliases[strings.ToLower(trimmed)]; ok {
		trimmed = alias
	}
	for i, standard := range model.StandardGenres {
		if strings.EqualFold(standard, trimmed) {
			return standard, i
		}
	}
	return trimmed, -1
}

func buildFeatureVector(record RawGame, genre string, genreIdx int) model.FeatureVector {
	return model.FeatureVector{
		GenreWeights:          genreWeights(genre, genreIdx, record.Deck),
		MechanicFlags:         mechanicFlags(genre, record),
		PlatformGeneration:    platformGeneration(record),
		Complexity:            complexity(genre, record.Year),
		ActionStrategyBalance: actionStrategyBase[genre],
		SingleMultiBalance:    singleMultiBalance(genre, record.Platforms),
	}
}

func genreWeights(genre string, genreIdx int, deck string) []float64 {
	weights := make([]float64, len(model.StandardGenres))
	if genreIdx >= 0 {
		weights[genreIdx] = 1.0
		for _, boost := range relatedGenres[genre] {
			if idx := model.GenreIndex(boost.Genre); idx >= 0 && boost.Weight > weights[idx] {
				weights[idx] = boost.Weight
			}
		}
	}

	// Deck text naming another genre adds a small secondary weight
	deckLower := strings.ToLower(deck)
	for i, standard := range model.StandardGenres {
		if i == genreIdx {
			continue
		}
		if strings.Contains(deckLower, strings.ToLower(standard)) && weights[i] < 0.3 {
			weights[i] = 0.3
		}
	}

	return weights
}

func mechanicFlags(genre string, record RawGame) []bool {
	flags := make([]bool, len(model.StandardMechanics))
	for _, mechanic := range genreMechanics[genre] {
		setMechanicFlag(flags, mechanic)
	}

	// Arcade era games ran on timers and credits
	if record.Year <= 1985 {
		setMechanicFlag(flags, "Time Pressure")
	}
	if hasPlatform(record.Platforms, "Arcade") {
		setMechanicFlag(flags, "Multiplayer")
	}

	return flags
}

func setMechanicFlag(flags []bool, mechanic string) {
	if idx := model.MechanicIndex(mechanic); idx >= 0 {
		flags[idx] = true
	}
}

func platformGeneration(record RawGame) int {
	generation := 0
	for _, platform := range record.Platforms {
		for _, entry := range platformGenerations {
			if strings.Contains(platform, entry.Keyword) && entry.Generation > generation {
				generation = entry.Generation
			}
		}
	}
	if generation > 0 {
		return generation
	}

	// Fallback by release year
	switch {
	case record.Year <= 1984:
		return 1
	case record.Year <= 1987:
		return 2
	case record.Year <= 1990:
		return 3
	case record.Year <= 1993:
		return 4
	default:
		return 5
	}
}

// complexity combines the genre base with an era modifier, because games
// grew more complex toward the mid 90s. The result stays in [0.2, 1.0].
func complexity(genre string, year int) float64 {
	base, ok := complexityBase[genre]
	if !ok {
		base = 0.5
	}
	modifier := math.Min((float64(year)-1980.0)/15.0, 0.2)
	return math.Min(math.Max(base+modifier, 0.2), 1.0)
}

func singleMultiBalance(genre string, platforms []string) float64 {
	balance, ok := singleMultiBase[genre]
	if !ok {
		balance = -0.5
	}
	// Arcade cabinets usually carried a two player mode
	if hasPlatform(platforms, "Arcade") && balance < 0.5 {
		balance = 0.5
	}
	return balance
}

func hasPlatform(platforms []string, keyword string) bool {
	for _, platform := range platforms {
		if strings.Contains(platform, keyword) {
			return true
		}
	}
	return false
}

// mechanicTags names the set mechanic flags, sorted for deterministic output
func mechanicTags(flags []bool) []string {
	tags := make([]string, 0)
	for i, set := range flags {
		if set {
			tags = append(tags, model.StandardMechanics[i])
		}
	}
	sort.Strings(tags)
	return tags
}

func moodTags(genre string, year int) []string {
	tags := append([]string{}, genreMoods[genre]...)
	if year <= 1985 {
		tags = append(tags, "Arcade", "Retro")
	} else if year >= 1992 {
		tags = append(tags, "16-bit Era")
	}
	sort.Strings(tags)
	return tags
}

func genreAffinities(weights []float64) model.ScoreMap {
	affinities := model.ScoreMap{}
	for i, weight := range weights {
		if weight > 0 {
			affinities[model.StandardGenres[i]] = weight
		}
	}
	return affinities
}
