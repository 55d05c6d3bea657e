package geo

import (
	"errors"
	"fmt"
)

// GeoJSON object and geometry types.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
	TypePolygon           = "Polygon"
)

// ErrNotPoint is returned when a geometry other than a Point is read as one.
var ErrNotPoint = errors.New("geometry is not a point")

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
// Coordinates is []float64 for a Point and [][][]float64 for a Polygon
// when built here; decoded input holds generic slices.
type GeoJSONGeometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// NewFeatureCollection wraps features into a FeatureCollection.
func NewFeatureCollection(features ...GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}

	return GeoJSONFeatureCollection{Type: TypeFeatureCollection, Features: features}
}

// NewPointGeometry builds a Point geometry.
func NewPointGeometry(p Point) GeoJSONGeometry {
	return GeoJSONGeometry{Type: TypePoint, Coordinates: p.Coordinates()}
}

// NewPolygonGeometry builds a single-ring Polygon geometry.
// The ring is closed by repeating the first vertex.
func NewPolygonGeometry(ring []Point) GeoJSONGeometry {
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, p.Coordinates())
	}
	if len(ring) > 0 {
		coords = append(coords, ring[0].Coordinates())
	}

	return GeoJSONGeometry{Type: TypePolygon, Coordinates: [][][]float64{coords}}
}

// Point returns the position of a Point geometry.
func (g GeoJSONGeometry) Point() (Point, error) {
	if g.Type != TypePoint {
		return Point{}, fmt.Errorf("%w: %s", ErrNotPoint, g.Type)
	}

	var pos []float64
	switch c := g.Coordinates.(type) {
	case []float64:
		pos = c
	case []interface{}:
		pos = make([]float64, 0, len(c))
		for _, v := range c {
			f, ok := toFloat(v)
			if !ok {
				return Point{}, fmt.Errorf("invalid coordinate value %v", v)
			}
			pos = append(pos, f)
		}
	default:
		return Point{}, fmt.Errorf("invalid point coordinates %T", g.Coordinates)
	}

	if len(pos) < 2 {
		return Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(pos))
	}

	return Point{Lon: pos[0], Lat: pos[1]}, nil
}

// toFloat accepts the numeric types produced by the JSON and YAML decoders.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}

	return 0, false
}
