package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/internal/config"
	"github.com/woozymasta/hexgeo/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input       string   `short:"i" long:"in"          description:"Input GeoJSON or YAML FeatureCollection of points. Reads from stdin if empty and no --point given"`
	Output      string   `short:"o" long:"out"         description:"Output file path. Writes to stdout if empty"`
	Format      string   `short:"f" long:"format"      description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Size        float64  `short:"s" long:"size"        description:"Cell radius in projection units" required:"true"`
	Orientation string   `short:"r" long:"orientation" description:"Cell orientation" choice:"flat" choice:"pointy" default:"flat"`
	Projection  string   `short:"p" long:"projection"  description:"Projection" choice:"noop" choice:"sinusoidal" choice:"aep" choice:"mercator" default:"mercator"`
	Unguarded   bool     `short:"u" long:"unguarded"   description:"Skip projection domain checks"`
	Layers      int64    `short:"l" long:"layers"      description:"Neighbor rings to add around each cell" default:"0"`
	Points      []string `short:"P" long:"point"       description:"Point as lon,lat (repeatable)"`
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

	gridCfg := config.Grid{
		Orientation: opts.Orientation,
		Projection:  opts.Projection,
		Size:        opts.Size,
		Unguarded:   opts.Unguarded,
	}
	cfg := config.Config{Grid: gridCfg}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid grid options")
	}

	grid, err := cfg.Grid.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build grid")
	}

	// Read Input
	points := make([]geo.Point, 0, len(opts.Points))
	for _, s := range opts.Points {
		p, err := geo.ParsePoint(s)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid --point")
		}
		points = append(points, p)
	}

	if opts.Input != "" || len(opts.Points) == 0 {
		var data []byte
		if opts.Input != "" {
			data, err = os.ReadFile(opts.Input)
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read input")
		}

		fromFile, err := readPoints(data)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to parse input")
		}
		points = append(points, fromFile...)
	}

	fc, skipped, err := convert(grid, points, opts.Layers)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to describe cells")
	}

	// marshal
	var outputData []byte
	if opts.Format == "yaml" {
		outputData, err = yaml.Marshal(fc)
	} else {
		outputData, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal cells")
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output file")
		}
	} else {
		_, _ = os.Stdout.Write(append(outputData, '\n'))
	}

	log.Info().
		Int("points", len(points)).
		Int("skipped", skipped).
		Int("cells", len(fc.Features)).
		Str("format", opts.Format).
		Msg("Conversion finished")
}
