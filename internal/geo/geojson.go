package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
// Properties is any JSON-marshalable object; the codec supplies an
// order-preserving field map here.
type Feature struct {
	Type       string   `json:"type"`
	Properties any      `json:"properties"`
	Geometry   Geometry `json:"geometry"`
}

// Geometry represents the geometry of a feature.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [Lon, Lat]
}
