package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/woozymasta/markers/internal/geo"
	"github.com/woozymasta/markers/internal/marker"

	"github.com/tidwall/gjson"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ParseGeoJSON reads a GeoJSON FeatureCollection. Coordinates arrive in
// [longitude, latitude] order and are swapped into the model's
// latitude-first order. Properties are copied in document order with
// lower-cased keys; null-valued properties are dropped.
//
// A leading UTF-8 byte order mark is tolerated.
func ParseGeoJSON(data []byte) (marker.Collection, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("malformed GeoJSON document")
	}

	features := gjson.GetBytes(data, "features")
	if !features.Exists() || !features.IsArray() {
		return nil, fmt.Errorf("not a FeatureCollection: missing features array")
	}

	var collection marker.Collection
	var parseErr error

	features.ForEach(func(_, feature gjson.Result) bool {
		m := marker.New()

		coords := feature.Get("geometry.coordinates")
		if coords.Exists() {
			arr := coords.Array()
			if len(arr) < 2 {
				parseErr = fmt.Errorf("invalid coordinates: %q", coords.Raw)
				return false
			}
			// GeoJSON uses [longitude, latitude]
			m.Geo = geo.Point{Lat: arr[1].Float(), Lon: arr[0].Float()}
		}

		feature.Get("properties").ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.Null {
				return true
			}
			m.Fields.Set(strings.ToLower(key.String()), value.Value())
			return true
		})

		collection = append(collection, m)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return collection, nil
}

// RenderGeoJSON serializes a collection as an indented FeatureCollection of
// Point features. All fields become properties, with one renaming: the XML
// schema's "adr" is written as "address".
func RenderGeoJSON(c marker.Collection) (string, error) {
	fc := geo.FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geo.Feature, 0, len(c)),
	}

	for _, m := range c {
		properties := m.Fields.Clone()
		if adr, ok := properties.Get("adr"); ok {
			properties.Delete("adr")
			properties.Set("address", adr)
		}

		fc.Features = append(fc.Features, geo.Feature{
			Type:       "Feature",
			Properties: properties,
			Geometry: geo.Geometry{
				Type:        "Point",
				Coordinates: []float64{m.Geo.Lon, m.Geo.Lat},
			},
		})
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}
