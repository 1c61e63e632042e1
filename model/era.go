package model

// Era categories for the fixed year buckets
const (
	EraEarly80s = "early_80s"
	EraMid80s   = "mid_80s"
	EraLate80s  = "late_80s"
	EraEarly90s = "early_90s"
	EraMid90s   = "mid_90s"
	EraUnknown  = "unknown"
)

// EraCategory maps a release year to its era bucket.
// Years outside 1980-1995 map to EraUnknown.
func EraCategory(year int) string {
	switch {
	case year >= 1980 && year <= 1983:
		return EraEarly80s
	case year >= 1984 && year <= 1986:
		return EraMid80s
	case year >= 1987 && year <= 1989:
		return EraLate80s
	case year >= 1990 && year <= 1992:
		return EraEarly90s
	case year >= 1993 && year <= 1995:
		return EraMid90s
	default:
		return EraUnknown
	}
}
