// Package codec implements the bidirectional parsers and renderers for the
// supported marker file formats and the format dispatch between them.
package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/markers/internal/marker"

	"github.com/rs/zerolog/log"
)

// Format identifies one of the supported marker file formats.
type Format string

const (
	FormatXML     Format = "xml"
	FormatGeoJSON Format = "geojson"
	FormatKML     Format = "kml"
)

// ErrUnsupportedFormat is returned when a file extension matches none of
// the supported formats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Ext returns the output file extension for the format.
func (f Format) Ext() string {
	return "." + string(f)
}

// MediaType returns the MIME type of rendered output, used to pick the
// matching minifier.
func (f Format) MediaType() string {
	if f == FormatGeoJSON {
		return "application/json"
	}
	return "text/xml"
}

// DetectFormat maps a file path to its format by extension. Both .json and
// .geojson are treated as GeoJSON.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".json", ".geojson":
		return FormatGeoJSON, nil
	case ".kml":
		return FormatKML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Parse decodes source text in the given format into a marker collection.
func Parse(data []byte, format Format) (marker.Collection, error) {
	switch format {
	case FormatXML:
		return ParseXML(data)
	case FormatGeoJSON:
		return ParseGeoJSON(data)
	case FormatKML:
		return ParseKML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFile reads a file, detects its format and parses it.
func ParseFile(path string) (marker.Collection, Format, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	collection, err := Parse(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	return collection, format, nil
}

// Render serializes a marker collection into the given format.
func Render(c marker.Collection, format Format) (string, error) {
	switch format {
	case FormatXML:
		return RenderXML(c)
	case FormatGeoJSON:
		return RenderGeoJSON(c)
	case FormatKML:
		return RenderKML(c)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Convert renders a collection into the target format. When the source and
// target formats are equal the conversion is a no-op: Convert returns
// ok == false with no error, and the caller should keep the original file.
func Convert(c marker.Collection, from, to Format) (string, bool, error) {
	if from == to {
		log.Info().
			Str("format", string(to)).
			Msg("Conversion skipped, source is already in target format")
		return "", false, nil
	}

	out, err := Render(c, to)
	if err != nil {
		return "", false, err
	}

	return out, true, nil
}
