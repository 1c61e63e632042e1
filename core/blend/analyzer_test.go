package blend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzerFindSynergies(t *testing.T) {
	analyzer := NewAnalyzer()

	t.Run("Genre match", func(t *testing.T) {
		game1 := newBlendGame("contra", "Contra", 1987, "Action")
		game2 := newBlendGame("megaman", "Mega Man", 1987, "Action")

		synergies := analyzer.FindSynergies(game1, game2)

		require.NotEmpty(t, synergies, "Expected synergies for matching genres")
		assert.Equal(t, "genre_match", synergies[0].Type, "Expected genre match first")
		assert.Equal(t, "Both games are Action games", synergies[0].Description)
		assert.Equal(t, 0.8, synergies[0].Strength, "Expected genre match strength 0.8")
	})

	t.Run("No genre match for empty genres", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1985, "")
		game2 := newBlendGame("b", "B", 1985, "")

		for _, synergy := range analyzer.FindSynergies(game1, game2) {
			assert.NotEqual(t, "genre_match", synergy.Type, "Expected no genre match for empty genres")
		}
	})

	t.Run("Era synergy for same era", func(t *testing.T) {
		game1 := newBlendGame("pacman", "Pac-Man", 1980, "Action")
		game2 := newBlendGame("galaga", "Galaga", 1981, "Shooter")

		synergies := analyzer.FindSynergies(game1, game2)

		found := false
		for _, synergy := range synergies {
			if synergy.Type == "era_synergy" {
				found = true
				assert.Equal(t, 0.8, synergy.Strength, "Expected same era strength 0.8")
				assert.Contains(t, synergy.Description, "early_80s", "Expected era name in description")
			}
		}
		assert.True(t, found, "Expected era synergy for same era games")
	})

	t.Run("Era synergy for close years across eras", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1983, "Action")
		game2 := newBlendGame("b", "B", 1985, "Shooter")

		synergies := analyzer.FindSynergies(game1, game2)

		found := false
		for _, synergy := range synergies {
			if synergy.Type == "era_synergy" {
				found = true
				assert.Equal(t, 0.6, synergy.Strength, "Expected close year strength 0.6")
			}
		}
		assert.True(t, found, "Expected era synergy for close years")
	})

	t.Run("Platform match", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1985, "Action")
		game2 := newBlendGame("b", "B", 1985, "Puzzle")
		game1.FeatureVector.PlatformGeneration = 3
		game2.FeatureVector.PlatformGeneration = 3

		synergies := analyzer.FindSynergies(game1, game2)

		found := false
		for _, synergy := range synergies {
			if synergy.Type == "platform_match" {
				found = true
				assert.Equal(t, 0.5, synergy.Strength, "Expected platform match strength 0.5")
			}
		}
		assert.True(t, found, "Expected platform match synergy")
	})

	t.Run("Complexity harmony requires different genres", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1985, "Action")
		game2 := newBlendGame("b", "B", 1985, "Puzzle")
		game1.FeatureVector.Complexity = 0.5
		game2.FeatureVector.Complexity = 0.6

		synergies := analyzer.FindSynergies(game1, game2)
		found := false
		for _, synergy := range synergies {
			if synergy.Type == "complexity_harmony" {
				found = true
				assert.Equal(t, 0.7, synergy.Strength, "Expected complexity harmony strength 0.7")
			}
		}
		assert.True(t, found, "Expected complexity harmony for close complexity across genres")

		// Same genre pairs describe this as a genre match instead
		game3 := newBlendGame("c", "C", 1985, "Action")
		for _, synergy := range analyzer.FindSynergies(game1, game3) {
			assert.NotEqual(t, "complexity_harmony", synergy.Type, "Expected no complexity harmony for same genre")
		}
	})

	t.Run("Shared mechanics listed sorted", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1985, "Action", "Time Pressure", "Combat", "Collection")
		game2 := newBlendGame("b", "B", 1985, "Shooter", "Combat", "Collection", "Stealth")

		synergies := analyzer.FindSynergies(game1, game2)

		found := false
		for _, synergy := range synergies {
			if synergy.Type == "mechanic_synergy" {
				found = true
				assert.Equal(t, "Both games feature Collection, Combat", synergy.Description, "Expected sorted shared mechanics in description")
				assert.Equal(t, 0.6, synergy.Strength, "Expected mechanic synergy strength 0.6")
			}
		}
		assert.True(t, found, "Expected mechanic synergy for shared tags")
	})
}

func TestAnalyzerFindConflicts(t *testing.T) {
	analyzer := NewAnalyzer()

	t.Run("Complexity mismatch names the more complex game first", func(t *testing.T) {
		simple := newBlendGame("pong", "Pong", 1980, "Sports")
		complex := newBlendGame("civ", "Civilization", 1991, "Strategy")
		simple.FeatureVector.Complexity = 0.2
		complex.FeatureVector.Complexity = 0.9

		conflicts := analyzer.FindConflicts(simple, complex)

		require.NotEmpty(t, conflicts, "Expected conflicts for complexity gap")
		assert.Equal(t, "complexity_mismatch", conflicts[0].Type)
		assert.Equal(t, "Civilization is much more complex than Pong", conflicts[0].Description)
		assert.InDelta(t, 0.7, conflicts[0].Severity, 1e-9, "Expected severity equal to the complexity gap")
		assert.Equal(t, "Consider adjusting difficulty curves or adding tutorial layers", conflicts[0].ResolutionHint)
	})

	t.Run("Pacing clash severity is half the gap", func(t *testing.T) {
		action := newBlendGame("contra", "Contra", 1987, "Shooter")
		strategy := newBlendGame("chess", "Chessmaster", 1986, "Simulation")
		action.FeatureVector.ActionStrategyBalance = 0.8
		strategy.FeatureVector.ActionStrategyBalance = -0.8

		conflicts := analyzer.FindConflicts(action, strategy)

		found := false
		for _, conflict := range conflicts {
			if conflict.Type == "pacing_clash" {
				found = true
				assert.InDelta(t, 0.8, conflict.Severity, 1e-9, "Expected severity of half the balance gap")
			}
		}
		assert.True(t, found, "Expected pacing clash for opposing balance")
	})

	t.Run("Era gap", func(t *testing.T) {
		old := newBlendGame("pacman", "Pac-Man", 1980, "Action")
		newer := newBlendGame("doom_like", "Doom-like", 1993, "Shooter")

		conflicts := analyzer.FindConflicts(old, newer)

		found := false
		for _, conflict := range conflicts {
			if conflict.Type == "era_gap" {
				found = true
				assert.Equal(t, 0.4, conflict.Severity, "Expected era gap severity 0.4")
			}
		}
		assert.True(t, found, "Expected era gap conflict for more than a decade")
	})

	t.Run("Genre clash works in both directions", func(t *testing.T) {
		action := newBlendGame("a", "A", 1985, "Action")
		strategy := newBlendGame("b", "B", 1985, "Strategy")

		first := analyzer.FindConflicts(action, strategy)
		second := analyzer.FindConflicts(strategy, action)

		foundFirst, foundSecond := false, false
		for _, conflict := range first {
			if conflict.Type == "genre_clash" {
				foundFirst = true
				assert.Equal(t, 0.6, conflict.Severity, "Expected genre clash severity 0.6")
			}
		}
		for _, conflict := range second {
			if conflict.Type == "genre_clash" {
				foundSecond = true
			}
		}
		assert.True(t, foundFirst, "Expected genre clash for Action vs Strategy")
		assert.True(t, foundSecond, "Expected genre clash for Strategy vs Action")
	})

	t.Run("Mechanic contradiction", func(t *testing.T) {
		realTime := newBlendGame("a", "A", 1985, "Action", "Real-Time")
		turnBased := newBlendGame("b", "B", 1985, "RPG", "Turn-Based")

		conflicts := analyzer.FindConflicts(realTime, turnBased)

		found := false
		for _, conflict := range conflicts {
			if conflict.Type == "mechanic_contradiction" {
				found = true
				assert.Equal(t, 0.5, conflict.Severity, "Expected contradiction severity 0.5")
				assert.Equal(t, "Offer both modes and let the player choose", conflict.ResolutionHint)
			}
		}
		assert.True(t, found, "Expected mechanic contradiction for Real-Time vs Turn-Based")
	})

	t.Run("Unremarkable pair yields no conflicts", func(t *testing.T) {
		game1 := newBlendGame("a", "A", 1985, "Action")
		game2 := newBlendGame("b", "B", 1986, "Shooter")

		assert.Empty(t, analyzer.FindConflicts(game1, game2), "Expected no conflicts for a compatible pair")
	})
}
