package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/markers/internal/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testXML = `<?xml version="1.0" encoding="UTF-8"?>
<markers>
  <marker>
    <name>Test Location</name>
    <adr>123 Test Street</adr>
    <geo>30.123456, -97.123456</geo>
    <note>Test note</note>
  </marker>
</markers>
`

func writeInput(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestProcessSingleFile(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	input := writeInput(t, dir, "markers.xml", testXML)

	result, err := Process(input, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatGeoJSON, codec.FormatKML},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 0, result.Failed)

	geojson, err := os.ReadFile(filepath.Join(out, "markers.geojson"))
	require.NoError(t, err)
	assert.Contains(t, string(geojson), `"address": "123 Test Street"`)

	kml, err := os.ReadFile(filepath.Join(out, "markers.kml"))
	require.NoError(t, err)
	assert.Contains(t, string(kml), "<coordinates>-97.123456,30.123456</coordinates>")
}

func TestProcessCopyFallback(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	input := writeInput(t, dir, "markers.xml", testXML)

	result, err := Process(input, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatXML},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Converted)
	assert.Equal(t, 1, result.Copied)

	copied, err := os.ReadFile(filepath.Join(out, "markers.xml"))
	require.NoError(t, err)
	assert.Equal(t, testXML, string(copied))
}

func TestProcessNoOpInPlace(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "markers.xml", testXML)

	// no output dir: the destination is the input itself, nothing to do
	result, err := Process(input, Options{Targets: []codec.Format{codec.FormatXML}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Copied)
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeInput(t, dir, "a.xml", testXML)
	writeInput(t, dir, filepath.Join("nested", "b.xml"), testXML)
	writeInput(t, dir, "readme.txt", "not a marker file")

	result, err := Process(dir, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatGeoJSON},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 1, result.Skipped) // readme.txt
	assert.Equal(t, 0, result.Failed)

	// directory structure is preserved
	_, err = os.Stat(filepath.Join(out, "a.geojson"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "nested", "b.geojson"))
	require.NoError(t, err)
}

func TestProcessContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	writeInput(t, dir, "bad.xml", "<markers></markers>")
	writeInput(t, dir, "good.xml", testXML)

	result, err := Process(dir, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatKML},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Converted)
}

func TestProcessMinify(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	input := writeInput(t, dir, "markers.xml", testXML)

	result, err := Process(input, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatGeoJSON},
		Minify:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)

	data, err := os.ReadFile(filepath.Join(out, "markers.geojson"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n  ")
	assert.Contains(t, string(data), `"address":"123 Test Street"`)
}

func TestProcessDoesNotOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	input := writeInput(t, dir, "markers.xml", testXML)
	existing := writeInput(t, out, "markers.geojson", "keep me")

	_, err := Process(input, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatGeoJSON},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))

	// force replaces it
	_, err = Process(input, Options{
		OutputDir: out,
		Targets:   []codec.Format{codec.FormatGeoJSON},
		Force:     true,
	})
	require.NoError(t, err)

	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
}
