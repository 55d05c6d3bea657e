package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/geogrid"
	"github.com/woozymasta/hexgeo/hexgrid"
)

// readPoints extracts Point features from a JSON or YAML FeatureCollection.
// Other geometries are skipped.
func readPoints(data []byte) ([]geo.Point, error) {
	var fc geo.GeoJSONFeatureCollection
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if fc.Type != geo.TypeFeatureCollection {
		return nil, fmt.Errorf("expected %s, got %q", geo.TypeFeatureCollection, fc.Type)
	}

	points := make([]geo.Point, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, err := f.Geometry.Point()
		if err != nil {
			log.Warn().Err(err).Int("feature", i).Msg("Skipping feature")
			continue
		}
		points = append(points, p)
	}

	return points, nil
}

// convert collects the distinct cells containing points, plus layers rings
// of neighbors, in first-seen order. Points the grid cannot place are
// counted as skipped.
func convert(grid *geogrid.Grid, points []geo.Point, layers int64) (geo.GeoJSONFeatureCollection, int, error) {
	seen := make(map[hexgrid.Hex]struct{})
	cells := make([]hexgrid.Hex, 0, len(points))
	add := func(h hexgrid.Hex) {
		if _, ok := seen[h]; ok {
			return
		}
		seen[h] = struct{}{}
		cells = append(cells, h)
	}

	skipped := 0
	for _, p := range points {
		hex, err := grid.HexAt(p)
		if err != nil {
			log.Warn().Err(err).Str("point", p.String()).Msg("Skipping point")
			skipped++
			continue
		}

		add(hex)
		for _, n := range grid.HexNeighbors(hex, layers) {
			add(n)
		}
	}

	fc, err := grid.CellCollection(cells)
	return fc, skipped, err
}
