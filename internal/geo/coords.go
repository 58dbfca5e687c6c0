// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a geographic coordinate pair in latitude/longitude order.
type Point struct {
	Lat float64
	Lon float64
}

// ParseCoordinates splits a comma-separated coordinate string into its first
// two components. It is axis-order agnostic: values are returned positionally
// and the caller decides which one is latitude.
//
// An empty (or whitespace-only) string is tolerated and yields (0, 0); any
// non-empty string that does not contain two parseable floats is an error.
func ParseCoordinates(text string) (float64, float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, nil
	}

	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid coordinates: %q", text)
	}

	values := make([]float64, 2)
	for i, part := range parts[:2] {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid coordinate format: %q", text)
		}
		values[i] = v
	}

	return values[0], values[1], nil
}

// FormatLatLon renders a point as "{lat}, {lon}" (comma-space, latitude
// first), the axis order used by the marker XML schema.
func FormatLatLon(p Point) string {
	return formatFloat(p.Lat) + ", " + formatFloat(p.Lon)
}

// FormatLonLat renders a point as "{lon},{lat}" (no space, longitude first),
// the axis order used by KML coordinates.
func FormatLonLat(p Point) string {
	return formatFloat(p.Lon) + "," + formatFloat(p.Lat)
}

// formatFloat keeps the shortest decimal representation so fixed-precision
// source text survives a round-trip.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
