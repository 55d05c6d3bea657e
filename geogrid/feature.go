package geogrid

import (
	"github.com/woozymasta/hexgeo/geo"
	"github.com/woozymasta/hexgeo/hexgrid"
)

// CellFeature describes a cell as a GeoJSON polygon with its code, axial
// coordinates and center in the properties.
func (g *Grid) CellFeature(hex hexgrid.Hex) (geo.GeoJSONFeature, error) {
	code, err := g.HexToCode(hex)
	if err != nil {
		return geo.GeoJSONFeature{}, err
	}

	center, err := g.HexCenter(hex)
	if err != nil {
		return geo.GeoJSONFeature{}, err
	}

	corners, err := g.HexCorners(hex)
	if err != nil {
		return geo.GeoJSONFeature{}, err
	}

	return geo.GeoJSONFeature{
		Type:     geo.TypeFeature,
		Geometry: geo.NewPolygonGeometry(corners),
		Properties: map[string]interface{}{
			"code":   code,
			"q":      hex.Q,
			"r":      hex.R,
			"center": center.Coordinates(),
		},
	}, nil
}

// CellCollection describes several cells as a FeatureCollection, failing on
// the first cell that cannot be described.
func (g *Grid) CellCollection(hexes []hexgrid.Hex) (geo.GeoJSONFeatureCollection, error) {
	features := make([]geo.GeoJSONFeature, 0, len(hexes))
	for _, hex := range hexes {
		f, err := g.CellFeature(hex)
		if err != nil {
			return geo.GeoJSONFeatureCollection{}, err
		}
		features = append(features, f)
	}

	return geo.NewFeatureCollection(features...), nil
}
