// Package server exposes a geo grid over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
	"github.com/woozymasta/hexgeo/morton"
	"github.com/woozymasta/hexgeo/projection"
)

const contentTypeGeoJSON = "application/geo+json"

// gridInfo is the public description of the grid.
type gridInfo struct {
	Orientation string  `json:"orientation"`
	Projection  string  `json:"projection"`
	Units       string  `json:"units"`
	Attribution string  `json:"attribution,omitempty"`
	Size        float64 `json:"size"`
	MaxLayers   int     `json:"max_layers"`
	Guarded     bool    `json:"guarded"`
}

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/grid", s.HandleGrid)
	mux.HandleFunc("GET /api/hex", s.HandleHexAt)
	mux.HandleFunc("GET /api/cells/{code}", s.HandleCell)
	mux.HandleFunc("GET /api/cells/{code}/neighbors", s.HandleNeighbors)
	mux.HandleFunc("GET /api/project", s.HandleProject)
	mux.HandleFunc("GET /api/unproject", s.HandleUnproject)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /{$}", s.HandleIndex)

	return mux
}

// HandleIndex serves the HTML page describing the API.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleGrid serves the grid parameters.
func (s *ServerContext) HandleGrid(w http.ResponseWriter, r *http.Request) {
	p := s.Grid.Projection()
	writeJSON(w, http.StatusOK, "application/json", gridInfo{
		Orientation: s.Grid.Orientation().String(),
		Projection:  p.Kind().String(),
		Units:       p.Units(),
		Attribution: s.Config.Attribution,
		Size:        s.Grid.Size(),
		MaxLayers:   s.Config.MaxLayers,
		Guarded:     p.Guarded(),
	})
}

// HandleHexAt serves the cell containing ?lon=&lat=.
func (s *ServerContext) HandleHexAt(w http.ResponseWriter, r *http.Request) {
	lon, err := floatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lat, err := floatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	hex, err := s.Grid.HexAt(geo.Point{Lon: lon, Lat: lat})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	s.writeCell(w, hex)
}

// HandleCell serves the cell identified by its code.
func (s *ServerContext) HandleCell(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.ParseInt(r.PathValue("code"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cell code %q", r.PathValue("code")))
		return
	}

	s.writeCell(w, s.Grid.HexFromCode(code))
}

// HandleNeighbors serves the cells around a cell, ?layers= rings deep (default 1).
func (s *ServerContext) HandleNeighbors(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.ParseInt(r.PathValue("code"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid cell code %q", r.PathValue("code")))
		return
	}

	layers := int64(1)
	if v := r.URL.Query().Get("layers"); v != "" {
		layers, err = strconv.ParseInt(v, 10, 64)
		if err != nil || layers < 1 || layers > int64(s.Config.MaxLayers) {
			writeError(w, http.StatusBadRequest,
				fmt.Errorf("layers must be an integer between 1 and %d", s.Config.MaxLayers))
			return
		}
	}

	origin := s.Grid.HexFromCode(code)
	neighbors := s.Grid.HexNeighbors(origin, layers)

	fc, err := s.Grid.CellCollection(neighbors)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	for i, n := range neighbors {
		fc.Features[i].Properties["ring"] = hexgrid.HexDistance(origin, n)
	}
	cellsServed.Add(float64(len(fc.Features)))

	writeJSON(w, http.StatusOK, contentTypeGeoJSON, fc)
}

// HandleProject serves the planar position of ?lon=&lat=.
func (s *ServerContext) HandleProject(w http.ResponseWriter, r *http.Request) {
	lon, err := floatParam(r, "lon")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	lat, err := floatParam(r, "lat")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	point, err := s.Grid.Projection().GeoToPoint(geo.Point{Lon: lon, Lat: lat})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, "application/json", point)
}

// HandleUnproject serves the geographic position of ?x=&y=.
func (s *ServerContext) HandleUnproject(w http.ResponseWriter, r *http.Request) {
	x, err := floatParam(r, "x")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := floatParam(r, "y")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	point, err := s.Grid.Projection().PointToGeo(hexgrid.Point{X: x, Y: y})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, "application/json", point)
}

func (s *ServerContext) writeCell(w http.ResponseWriter, hex hexgrid.Hex) {
	feature, err := s.Grid.CellFeature(hex)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	cellsServed.Inc()

	writeJSON(w, http.StatusOK, contentTypeGeoJSON, feature)
}

func floatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, fmt.Errorf("missing query parameter %q", name)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid query parameter %q: %q", name, v)
	}

	return f, nil
}

// statusFor maps grid errors caused by the input to 422.
func statusFor(err error) int {
	status := http.StatusInternalServerError
	if errors.Is(err, projection.ErrDomain) || errors.Is(err, morton.ErrValueOutOfRange) {
		status = http.StatusUnprocessableEntity
	}
	gridErrors.WithLabelValues(strconv.Itoa(status)).Inc()

	return status
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}

	writeJSON(w, status, "application/json", map[string]string{"error": err.Error()})
}
