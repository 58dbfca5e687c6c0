// Package marker defines the canonical in-memory representation of
// geographic marker collections shared by all format codecs.
package marker

import "github.com/woozymasta/markers/internal/geo"

// Marker is one geographic point with arbitrary metadata fields.
//
// Geo is always present; sources that omit coordinates leave it at (0, 0).
// Fields holds every other attribute of the source record, keyed by
// lower-cased name, in source order.
type Marker struct {
	Geo    geo.Point
	Fields *Fields
}

// New returns a marker with default coordinates and no fields.
func New() Marker {
	return Marker{Fields: NewFields()}
}

// Collection is an ordered sequence of markers parsed from one input file.
// It is built once by a parse call and read, never mutated, by renders.
type Collection []Marker
