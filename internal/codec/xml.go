package codec

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/woozymasta/markers/internal/geo"
	"github.com/woozymasta/markers/internal/marker"

	"github.com/rs/zerolog/log"
)

// ErrNoMarkers is returned when an XML document contains no marker elements.
var ErrNoMarkers = errors.New("no valid markers found")

// Generic structures for dynamic parsing. Two schema variants exist in the
// wild, one using <marker> elements and one using <item>; both are accepted.
type xmlDocument struct {
	XMLName xml.Name
	Entries []xmlEntry `xml:",any"`
}

type xmlEntry struct {
	XMLName  xml.Name
	Children []xmlChild `xml:",any"`
}

type xmlChild struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

// Fixed output schema.
type xmlMarkersOut struct {
	XMLName xml.Name       `xml:"markers"`
	Markers []xmlMarkerOut `xml:"marker"`
}

type xmlMarkerOut struct {
	Name string `xml:"name"`
	Adr  string `xml:"adr"`
	Geo  string `xml:"geo"`
	Note string `xml:"note"`
}

// ParseXML reads a marker XML document. Every child of a marker element
// becomes a field keyed by its lower-cased tag name, except <geo> which is
// parsed into the coordinate slot in latitude/longitude order.
func ParseXML(data []byte) (marker.Collection, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed XML: %w", err)
	}

	var collection marker.Collection
	for _, entry := range doc.Entries {
		if entry.XMLName.Local != "marker" && entry.XMLName.Local != "item" {
			continue
		}

		m := marker.New()
		for _, child := range entry.Children {
			tag := strings.ToLower(child.XMLName.Local)
			text := strings.TrimSpace(child.Text)

			if tag == marker.GeoKey {
				lat, lon, err := geo.ParseCoordinates(text)
				if err != nil {
					return nil, err
				}
				m.Geo = geo.Point{Lat: lat, Lon: lon}
				continue
			}

			m.Fields.Set(tag, text)
		}

		collection = append(collection, m)
	}

	if len(collection) == 0 {
		return nil, ErrNoMarkers
	}

	return collection, nil
}

// RenderXML serializes a collection into the fixed four-field marker
// schema: name, adr, geo, note. Fields outside that subset are not emitted.
func RenderXML(c marker.Collection) (string, error) {
	out := xmlMarkersOut{Markers: make([]xmlMarkerOut, 0, len(c))}

	for i, m := range c {
		name := m.Fields.GetString("name")
		if name == "" {
			log.Warn().Int("marker", i).Msg("Marker has no name, rendering empty")
		}

		out.Markers = append(out.Markers, xmlMarkerOut{
			Name: name,
			Adr:  m.Fields.GetString("address"),
			Geo:  geo.FormatLatLon(m.Geo),
			Note: m.Fields.GetString("note"),
		})
	}

	data, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	return xml.Header + string(data) + "\n", nil
}
