package main

import (
	"os"

	"github.com/woozymasta/markers/internal/batch"
	"github.com/woozymasta/markers/internal/codec"
	"github.com/woozymasta/markers/internal/config"
	"github.com/woozymasta/markers/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file" default:"markers.yaml"`
	Input      string `short:"i" long:"input"   env:"INPUT_PATH"  description:"Input file or directory" required:"true"`
	Output     string `short:"o" long:"output"  env:"OUTPUT_DIR"  description:"Output directory (defaults to alongside the input)"`
	XML        bool   `short:"x" long:"xml"     description:"Convert to XML"`
	GeoJSON    bool   `short:"g" long:"geojson" description:"Convert to GeoJSON"`
	KML        bool   `short:"k" long:"kml"     description:"Convert to KML"`
	Minify     bool   `short:"m" long:"minify"  description:"Minify rendered output"`
	Force      bool   `short:"f" long:"force"   description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.LoadOrCreate(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.LogLevel != "" && opts.Logger.Level == "info" {
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}

	targets := targetFormats(opts, cfg)
	if len(targets) == 0 {
		log.Fatal().Msg("No target format specified, use --xml, --geojson or --kml")
	}

	output := opts.Output
	if output == "" {
		output = cfg.OutputDir
	}

	log.Info().
		Str("input", opts.Input).
		Int("targets", len(targets)).
		Msg("Starting conversion")

	result, err := batch.Process(opts.Input, batch.Options{
		OutputDir: output,
		Targets:   targets,
		Minify:    opts.Minify || cfg.Minify,
		Force:     opts.Force || cfg.Force,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion aborted")
	}

	log.Info().
		Int("converted", result.Converted).
		Int("copied", result.Copied).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Conversion completed")

	if result.Failed > 0 {
		os.Exit(1)
	}
}

// targetFormats resolves the requested formats, flags taking precedence
// over configuration defaults.
func targetFormats(opts Options, cfg *config.Config) []codec.Format {
	var targets []codec.Format
	if opts.XML {
		targets = append(targets, codec.FormatXML)
	}
	if opts.GeoJSON {
		targets = append(targets, codec.FormatGeoJSON)
	}
	if opts.KML {
		targets = append(targets, codec.FormatKML)
	}
	if len(targets) > 0 {
		return targets
	}

	for _, name := range cfg.Targets {
		switch codec.Format(name) {
		case codec.FormatXML, codec.FormatGeoJSON, codec.FormatKML:
			targets = append(targets, codec.Format(name))
		default:
			log.Warn().Str("format", name).Msg("Unknown target format in configuration")
		}
	}
	return targets
}
