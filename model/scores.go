package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/siherrmann/blender/helper"
)

// ScoreMap represents a string-keyed score mapping stored as JSONB in PostgreSQL.
// It is used for genre affinities (genre -> weight) and common pairings
// (game id -> precomputed similarity).
type ScoreMap map[string]float64

// Value implements the driver.Valuer interface for database storage
func (s ScoreMap) Value() (driver.Value, error) {
	return s.Marshal()
}

// Scan implements the sql.Scanner interface for database retrieval
func (s *ScoreMap) Scan(value interface{}) error {
	return s.Unmarshal(value)
}

// Marshal converts ScoreMap to JSON bytes
func (s ScoreMap) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal converts JSON bytes or a ScoreMap to a ScoreMap
func (s *ScoreMap) Unmarshal(value interface{}) error {
	if value == nil {
		*s = ScoreMap{}
		return nil
	}

	if m, ok := value.(ScoreMap); ok {
		*s = m
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, s)
}
