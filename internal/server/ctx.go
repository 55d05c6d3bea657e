package server

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/woozymasta/hexgeo/geogrid"
	"github.com/woozymasta/hexgeo/internal/config"
)

//go:embed index.html.tpl
var indexTemplate string

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Grid      *geogrid.Grid
	IndexHTML []byte
}

type indexData struct {
	Projection  string
	Orientation string
	Units       string
	Attribution string
	Size        float64
	MaxLayers   int
}

// NewServerContext renders the index page for the grid and bundles the handler dependencies.
func NewServerContext(cfg *config.Config, grid *geogrid.Grid) (*ServerContext, error) {
	index, err := renderIndex(cfg, grid)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("projection", grid.Projection().String()).
		Str("orientation", grid.Orientation().String()).
		Float64("size", grid.Size()).
		Int("max_layers", cfg.MaxLayers).
		Int("index_bytes", len(index)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Grid:      grid,
		IndexHTML: index,
	}, nil
}

// renderIndex fills the index template and minifies the result.
func renderIndex(cfg *config.Config, grid *geogrid.Grid) ([]byte, error) {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, indexData{
		Projection:  grid.Projection().Kind().String(),
		Orientation: grid.Orientation().String(),
		Units:       grid.Projection().Units(),
		Attribution: cfg.Attribution,
		Size:        grid.Size(),
		MaxLayers:   cfg.MaxLayers,
	})
	if err != nil {
		return nil, fmt.Errorf("render index template: %w", err)
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	out, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify index: %w", err)
	}

	log.Debug().
		Int("raw", buf.Len()).
		Int("minified", len(out)).
		Msg("Index page minified")

	return out, nil
}
