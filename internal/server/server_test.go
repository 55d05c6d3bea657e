package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/internal/config"
)

const newYorkCode = "4611686018642219941"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Attribution: "test grid",
		Grid:        config.Grid{Size: 500},
	}
	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	grid, err := cfg.Grid.Build()
	require.NoError(t, err)

	s, err := NewServerContext(cfg, grid)
	require.NoError(t, err)

	return RequestLogger(s.Routes())
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(v))
}

func TestIndex(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "mercator")
	assert.Contains(t, rec.Body.String(), "test grid")

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestGridInfo(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/grid")
	require.Equal(t, http.StatusOK, rec.Code)

	var info gridInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, gridInfo{
		Orientation: "flat",
		Projection:  "mercator",
		Units:       "meters",
		Attribution: "test grid",
		Size:        500,
		MaxLayers:   config.DefaultMaxLayers,
		Guarded:     true,
	}, info)
}

func TestHexAt(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/hex?lon=-73&lat=40")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeGeoJSON, rec.Header().Get("Content-Type"))

	var feature geo.GeoJSONFeature
	decode(t, rec, &feature)
	assert.Equal(t, geo.TypeFeature, feature.Type)
	assert.Equal(t, geo.TypePolygon, feature.Geometry.Type)
	assert.Equal(t, json.Number(newYorkCode), feature.Properties["code"])
	assert.Equal(t, json.Number("-10835"), feature.Properties["q"])
	assert.Equal(t, json.Number("11036"), feature.Properties["r"])
}

func TestCell(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/cells/"+newYorkCode)
	require.Equal(t, http.StatusOK, rec.Code)

	var feature geo.GeoJSONFeature
	decode(t, rec, &feature)
	assert.Equal(t, json.Number(newYorkCode), feature.Properties["code"])

	rec = get(t, h, "/api/cells/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid cell code")
}

func TestNeighbors(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/cells/"+newYorkCode+"/neighbors")
	require.Equal(t, http.StatusOK, rec.Code)

	var fc geo.GeoJSONFeatureCollection
	decode(t, rec, &fc)
	assert.Len(t, fc.Features, 6)

	rec = get(t, h, "/api/cells/"+newYorkCode+"/neighbors?layers=2")
	require.Equal(t, http.StatusOK, rec.Code)

	fc = geo.GeoJSONFeatureCollection{}
	decode(t, rec, &fc)
	require.Len(t, fc.Features, 18)

	rings := map[json.Number]int{}
	for _, f := range fc.Features {
		rings[f.Properties["ring"].(json.Number)]++
	}
	assert.Equal(t, map[json.Number]int{"1": 6, "2": 12}, rings)

	for _, layers := range []string{"0", "11", "x"} {
		rec = get(t, h, "/api/cells/"+newYorkCode+"/neighbors?layers="+layers)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "layers=%s", layers)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	h := newTestServer(t)

	rec := get(t, h, "/api/project?lon=-73&lat=40")
	require.Equal(t, http.StatusOK, rec.Code)

	var point struct{ X, Y float64 }
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &point))
	assert.InDelta(t, -8126322.827908971, point.X, 0.00001)
	assert.InDelta(t, 4865942.279503176, point.Y, 0.00001)

	rec = get(t, h, "/api/unproject?x=-8126322.827908971&y=4865942.279503176")
	require.Equal(t, http.StatusOK, rec.Code)

	var back geo.Point
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &back))
	assert.InDelta(t, -73.0, back.Lon, 0.00001)
	assert.InDelta(t, 40.0, back.Lat, 0.00001)
}

func TestErrors(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		target string
		status int
	}{
		{"/api/hex?lon=-73", http.StatusBadRequest},
		{"/api/hex?lon=west&lat=40", http.StatusBadRequest},
		{"/api/project?lon=0&lat=90", http.StatusUnprocessableEntity},
		{"/api/hex?lon=0&lat=-90", http.StatusUnprocessableEntity},
		{"/api/unproject?x=0", http.StatusBadRequest},
		{"/api/missing", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := get(t, h, tc.target)
		assert.Equal(t, tc.status, rec.Code, tc.target)

		if tc.status != http.StatusNotFound {
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), tc.target)
			assert.NotEmpty(t, body["error"], tc.target)
		}
	}
}

func TestMetrics(t *testing.T) {
	h := newTestServer(t)

	before := testutil.ToFloat64(cellsServed)
	rec := get(t, h, "/api/cells/"+newYorkCode+"/neighbors?layers=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+6, testutil.ToFloat64(cellsServed))

	rejected := testutil.ToFloat64(gridErrors.WithLabelValues("422"))
	get(t, h, "/api/project?lon=0&lat=90")
	assert.Equal(t, rejected+1, testutil.ToFloat64(gridErrors.WithLabelValues("422")))

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hexgeo_http_requests_total")
	assert.Contains(t, rec.Body.String(), `pattern="GET /api/cells/{code}/neighbors"`)
	assert.Contains(t, rec.Body.String(), "hexgeo_grid_cells_served_total")
}
