package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/hexgeo/internal/config"
	"github.com/woozymasta/hexgeo/internal/logger"
	"github.com/woozymasta/hexgeo/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	MaxLayers  int    `short:"l" long:"max-layers" env:"MAX_LAYERS"     description:"Override neighbor layers limit from config"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.MaxLayers > 0 {
		cfg.MaxLayers = opts.MaxLayers
	}

	grid, err := cfg.Grid.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build grid")
	}

	srvCtx, err := server.NewServerContext(cfg, grid)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("projection", grid.Projection().String()).
		Int("max_layers", cfg.MaxLayers).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
