package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMapValue(t *testing.T) {
	t.Run("Valid score map", func(t *testing.T) {
		scores := ScoreMap{"pacman": 0.9, "galaga": 0.75}
		value, err := scores.Value()
		require.NoError(t, err, "Expected no error getting value of score map")

		unmarshalled := ScoreMap{}
		err = json.Unmarshal(value.([]byte), &unmarshalled)
		require.NoError(t, err, "Expected no error unmarshalling value")
		assert.Equal(t, scores, unmarshalled, "Expected unmarshalled score map to equal original")
	})

	t.Run("Empty score map", func(t *testing.T) {
		scores := ScoreMap{}
		value, err := scores.Value()
		require.NoError(t, err, "Expected no error getting value of empty score map")
		assert.Equal(t, []byte("{}"), value, "Expected empty score map to serialize to empty object")
	})
}

func TestScoreMapScan(t *testing.T) {
	t.Run("Valid bytes", func(t *testing.T) {
		scores := ScoreMap{}
		err := scores.Scan([]byte(`{"pacman": 0.9, "galaga": 0.75}`))
		require.NoError(t, err, "Expected no error scanning valid bytes")
		assert.Equal(t, 0.9, scores["pacman"], "Expected score for pacman to be 0.9")
		assert.Equal(t, 0.75, scores["galaga"], "Expected score for galaga to be 0.75")
	})

	t.Run("Invalid type", func(t *testing.T) {
		scores := ScoreMap{}
		err := scores.Scan("not bytes")
		assert.Error(t, err, "Expected error scanning non byte value")
	})

	t.Run("Invalid json", func(t *testing.T) {
		scores := ScoreMap{}
		err := scores.Scan([]byte(`{invalid`))
		assert.Error(t, err, "Expected error scanning invalid json")
	})
}
