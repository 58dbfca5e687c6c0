// Package batch handles the discovery and conversion of marker files.
package batch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/woozymasta/markers/internal/codec"

	"github.com/rs/zerolog/log"
)

// Options controls a conversion run.
type Options struct {
	// OutputDir receives converted files, mirroring the input directory
	// structure. Empty writes next to the source files.
	OutputDir string

	Targets []codec.Format
	Minify  bool
	Force   bool
}

// Result summarizes a conversion run.
type Result struct {
	Converted int
	Copied    int
	Skipped   int
	Failed    int
}

// Process converts a file, or every supported file under a directory, into
// each of the requested target formats. One file's failure does not stop
// the run; it is logged and counted.
func Process(input string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(input)
	if err != nil {
		return result, err
	}

	if !info.IsDir() {
		if err := processFile(filepath.Dir(input), input, opts, &result); err != nil {
			log.Error().Err(err).Str("file", input).Msg("Conversion failed")
			result.Failed++
		}
		return result, nil
	}

	err = filepath.WalkDir(input, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		if _, err := codec.DetectFormat(path); err != nil {
			if errors.Is(err, codec.ErrUnsupportedFormat) {
				log.Debug().Str("file", path).Msg("Unsupported extension, skipping")
				result.Skipped++
				return nil
			}
			return err
		}

		if err := processFile(input, path, opts, &result); err != nil {
			log.Error().Err(err).Str("file", path).Msg("Conversion failed")
			result.Failed++
		}
		return nil
	})

	return result, err
}

// processFile parses a source file once and renders it into every target.
func processFile(root, path string, opts Options, result *Result) error {
	collection, source, err := codec.ParseFile(path)
	if err != nil {
		return err
	}

	log.Debug().
		Str("file", path).
		Str("format", string(source)).
		Int("markers", len(collection)).
		Msg("Parsed input file")

	for _, target := range opts.Targets {
		dest, err := destPath(root, path, opts.OutputDir, target)
		if err != nil {
			return err
		}

		out, ok, err := codec.Convert(collection, source, target)
		if err != nil {
			return err
		}

		if !ok {
			// Already in the target format, keep the original bytes
			if sameFile(path, dest) {
				result.Skipped++
				continue
			}
			if err := copyFile(path, dest, opts.Force); err != nil {
				return err
			}
			result.Copied++
			continue
		}

		if opts.Minify {
			out, err = minifyOutput(out, target)
			if err != nil {
				return err
			}
		}

		if err := writeFile(dest, out, opts.Force); err != nil {
			return err
		}

		log.Info().
			Str("file", path).
			Str("target", string(target)).
			Str("dest", dest).
			Msg("Converted")
		result.Converted++
	}

	return nil
}

// destPath builds the output location for one target format, preserving the
// file's position relative to the input root.
func destPath(root, path, outputDir string, target codec.Format) (string, error) {
	dir := filepath.Dir(path)
	if outputDir != "" {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			return "", err
		}
		dir = filepath.Join(outputDir, rel)
	}

	base := filepath.Base(path)
	name := base[:len(base)-len(filepath.Ext(base))]

	return filepath.Join(dir, name+target.Ext()), nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
