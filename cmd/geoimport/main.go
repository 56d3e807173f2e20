package main

import (
	"net/http"
	"os"
	"time"

	"github.com/bitmold/organicmaps/internal/config"
	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"
	"github.com/bitmold/organicmaps/internal/logger"
	"github.com/bitmold/organicmaps/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string `short:"i" long:"in"         description:"Input GeoJSON file path or http(s) URL. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"        description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format"     description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"json"`
	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE" description:"Path to configuration file"`
	Projection string `short:"p" long:"projection" env:"PROJECTION"  description:"Projection override" choice:"mercator" choice:"web-mercator"`
	Minify     bool   `short:"m" long:"minify"     description:"Minify GeoJSON output"`
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

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Projection != "" {
		cfg.Projection = opts.Projection
	}
	if opts.Minify {
		cfg.Minify = true
	}

	proj, err := geo.ProjectionByName(cfg.Projection)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid projection")
	}

	var fd *kml.FileData
	if processor.IsURL(opts.Input) {
		client := &http.Client{Timeout: 30 * time.Second}
		fd, err = processor.ImportURL(client, opts.Input, proj)
	} else {
		fd, err = processor.ImportFile(opts.Input, proj)
	}
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to import GeoJSON")
	}

	out, err := processor.Encode(fd, opts.Format, proj, cfg.Minify)
	if err != nil {
		log.Fatal().Err(err).Str("format", opts.Format).Msg("Failed to encode output")
	}

	if err := processor.Save(opts.Output, out); err != nil {
		log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output")
	}

	if opts.Output != "" {
		log.Info().
			Str("output", opts.Output).
			Str("format", opts.Format).
			Str("projection", cfg.Projection).
			Msg("Conversion finished")
	}
}
