package codec

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/woozymasta/markers/internal/geo"
	"github.com/woozymasta/markers/internal/marker"

	"github.com/rs/zerolog/log"
)

// kmlNamespace is the KML 2.2 XML namespace.
const kmlNamespace = "http://www.opengis.net/kml/2.2"

// kmlNode is a generic element tree used to locate Placemark elements at
// any depth, since KML allows nesting them inside Folder and Document.
type kmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []kmlNode  `xml:",any"`
}

// Output structures, grounded in the KML 2.2 schema.
type kmlOut struct {
	XMLName  xml.Name       `xml:"kml"`
	Xmlns    string         `xml:"xmlns,attr"`
	Document kmlDocumentOut `xml:"Document"`
}

type kmlDocumentOut struct {
	Placemarks []kmlPlacemarkOut `xml:"Placemark"`
}

type kmlPlacemarkOut struct {
	Name         string             `xml:"name"`
	ExtendedData kmlExtendedDataOut `xml:"ExtendedData"`
	Point        kmlPointOut        `xml:"Point"`
}

type kmlExtendedDataOut struct {
	Data []kmlDataOut `xml:"Data"`
}

type kmlDataOut struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

// ParseKML reads every Placemark in a KML 2.2 document, wherever it is
// nested. KML coordinates are longitude-first; the parsed pair is swapped
// into the model's latitude-first order and any altitude is discarded.
func ParseKML(data []byte) (marker.Collection, error) {
	var root kmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("malformed KML: %w", err)
	}

	var collection marker.Collection
	var walkErr error

	walkKML(&root, func(placemark *kmlNode) bool {
		m := marker.New()

		if name := findChild(placemark, "name"); name != nil {
			m.Fields.Set("name", strings.TrimSpace(name.Text))
		}

		if coords := findDescendant(placemark, "coordinates"); coords != nil {
			lon, lat, err := geo.ParseCoordinates(strings.TrimSpace(coords.Text))
			if err != nil {
				walkErr = err
				return false
			}
			m.Geo = geo.Point{Lat: lat, Lon: lon}
		}

		if extended := findChild(placemark, "ExtendedData"); extended != nil {
			for i := range extended.Children {
				data := &extended.Children[i]
				if !isKMLElement(data, "Data") {
					continue
				}
				key := attrValue(data, "name")
				value := findChild(data, "value")
				// Data without a name attribute or value child is skipped
				if key == "" || value == nil {
					continue
				}
				m.Fields.Set(key, strings.TrimSpace(value.Text))
			}
		}

		collection = append(collection, m)
		return true
	})

	if walkErr != nil {
		return nil, walkErr
	}

	return collection, nil
}

// RenderKML serializes a collection as a KML Document of Placemarks. Every
// field except name is emitted as an ExtendedData entry, skipping empty
// values; coordinates are written longitude-first.
func RenderKML(c marker.Collection) (string, error) {
	doc := kmlDocumentOut{Placemarks: make([]kmlPlacemarkOut, 0, len(c))}

	for i, m := range c {
		name := m.Fields.GetString("name")
		if name == "" {
			log.Warn().Int("marker", i).Msg("Marker has no name, rendering empty")
		}

		placemark := kmlPlacemarkOut{
			Name:  name,
			Point: kmlPointOut{Coordinates: geo.FormatLonLat(m.Geo)},
		}

		for _, key := range m.Fields.Keys() {
			if key == "name" {
				continue
			}
			value, _ := m.Fields.Get(key)
			if marker.IsEmptyValue(value) {
				continue
			}
			placemark.ExtendedData.Data = append(placemark.ExtendedData.Data, kmlDataOut{
				Name:  key,
				Value: marker.ValueString(value),
			})
		}

		doc.Placemarks = append(doc.Placemarks, placemark)
	}

	out := kmlOut{Xmlns: kmlNamespace, Document: doc}
	data, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	return xml.Header + string(data) + "\n", nil
}

type kmlPointOut struct {
	Coordinates string `xml:"coordinates"`
}

// walkKML visits every Placemark in document order. The visitor returns
// false to stop the walk.
func walkKML(node *kmlNode, visit func(*kmlNode) bool) bool {
	for i := range node.Children {
		child := &node.Children[i]
		if isKMLElement(child, "Placemark") {
			if !visit(child) {
				return false
			}
			continue
		}
		if !walkKML(child, visit) {
			return false
		}
	}
	return true
}

// isKMLElement matches an element by local name within the KML namespace.
// Documents without a namespace declaration are accepted too.
func isKMLElement(node *kmlNode, local string) bool {
	if node.XMLName.Local != local {
		return false
	}
	return node.XMLName.Space == kmlNamespace || node.XMLName.Space == ""
}

func findChild(node *kmlNode, local string) *kmlNode {
	for i := range node.Children {
		if isKMLElement(&node.Children[i], local) {
			return &node.Children[i]
		}
	}
	return nil
}

func findDescendant(node *kmlNode, local string) *kmlNode {
	for i := range node.Children {
		child := &node.Children[i]
		if isKMLElement(child, local) {
			return child
		}
		if found := findDescendant(child, local); found != nil {
			return found
		}
	}
	return nil
}

func attrValue(node *kmlNode, local string) string {
	for _, attr := range node.Attrs {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}
