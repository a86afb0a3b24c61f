package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// geoURIPrefix marks the URI-style coordinate form used by one of the
// mobile exports, e.g. "geo:40.0,-75.0".
const geoURIPrefix = "geo:"

// degreeSymbol marks the human-readable form used by the other export,
// e.g. "40.0°, -75.0°".
const degreeSymbol = "°"

// ToE7 converts decimal degrees to the scaled integer representation.
func ToE7(degrees float64) int64 {
	return int64(math.Round(degrees * 1e7))
}

// FromE7 converts a scaled coordinate back to decimal degrees.
func FromE7(scaled int64) float64 {
	return float64(scaled) / 1e7
}

// FormatDegrees renders a scaled coordinate as a decimal-degree string
// using the shortest representation that round-trips.
func FormatDegrees(scaled int64) string {
	return strconv.FormatFloat(FromE7(scaled), 'f', -1, 64)
}

// ParseLatLng parses a coordinate string in either of the two known
// literal forms, detected by prefix: the "geo:" URI form with
// comma-separated decimal degrees, or the degree-symbol form with a
// ", " separator. Returns the scaled latitude and longitude.
func ParseLatLng(s string) (latE7, lngE7 int64, err error) {
	s = strings.TrimSpace(s)

	var latPart, lngPart string
	switch {
	case strings.HasPrefix(s, geoURIPrefix):
		parts := strings.Split(strings.TrimPrefix(s, geoURIPrefix), ",")
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("malformed geo URI: %q", s)
		}
		latPart, lngPart = parts[0], parts[1]
	case strings.Contains(s, degreeSymbol):
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return 0, 0, fmt.Errorf("malformed coordinate pair: %q", s)
		}
		latPart = strings.TrimSuffix(strings.TrimSpace(parts[0]), degreeSymbol)
		lngPart = strings.TrimSuffix(strings.TrimSpace(parts[1]), degreeSymbol)
	default:
		return 0, 0, fmt.Errorf("unrecognized coordinate format: %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latPart), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngPart), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	return ToE7(lat), ToE7(lng), nil
}
