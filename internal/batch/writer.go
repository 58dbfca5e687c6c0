package batch

import (
	"io"
	"os"
	"path/filepath"

	"github.com/woozymasta/markers/internal/codec"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	mxml "github.com/tdewolff/minify/v2/xml"
)

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	m.AddFunc("text/xml", mxml.Minify)
	return m
}

// minifyOutput compacts rendered text with the minifier matching the
// target's media type.
func minifyOutput(out string, target codec.Format) (string, error) {
	return minifier.String(target.MediaType(), out)
}

// writeFile writes rendered output, creating parent directories. Existing
// files are left untouched unless force is set.
func writeFile(path, data string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			log.Debug().Str("path", path).Msg("Output exists, skipping write")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(data), 0644)
}

// copyFile copies the original bytes for a no-op conversion.
func copyFile(src, dest string, force bool) error {
	if !force {
		if _, err := os.Stat(dest); err == nil {
			log.Debug().Str("path", dest).Msg("Output exists, skipping copy")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", dest).Msg("Failed to close file")
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
