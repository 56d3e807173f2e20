package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Geometry is a decoded geometry in projected coordinates.
// Only Point and LineString implement it.
type Geometry interface {
	Kind() Kind
	geometry()
}

// Point is a single projected position.
type Point orb.Point

// Kind implements Geometry.
func (Point) Kind() Kind { return KindPoint }
func (Point) geometry()  {}

// LineString is an ordered sequence of projected positions.
type LineString orb.LineString

// Kind implements Geometry.
func (LineString) Kind() Kind { return KindLineString }
func (LineString) geometry()  {}

// Decode checks the type tag of raw and projects its coordinates with proj.
func Decode(raw RawGeometry, proj Projection) (Geometry, error) {
	kind, err := ParseKind(raw.Type)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPoint:
		return decodePoint(raw.Coordinates, proj)
	case KindLineString:
		return decodeLineString(raw.Coordinates, proj)
	}

	return nil, &ErrUnsupportedGeometryType{Type: raw.Type}
}

func decodePoint(data json.RawMessage, proj Projection) (Geometry, error) {
	// pointers keep a JSON null apart from 0
	var pos []*float64
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, &ErrMalformedGeometry{Type: KindPoint, Reason: "coordinates must be an array of numbers"}
	}

	lon, lat, err := lonLat(pos)
	if err != nil {
		return nil, &ErrMalformedGeometry{Type: KindPoint, Reason: "position " + err.Error()}
	}

	return Point(proj.FromLonLat(lon, lat)), nil
}

func decodeLineString(data json.RawMessage, proj Projection) (Geometry, error) {
	var positions [][]*float64
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, &ErrMalformedGeometry{Type: KindLineString, Reason: "coordinates must be an array of positions"}
	}
	// RFC 7946 §3.1.4
	if len(positions) < 2 {
		return nil, &ErrMalformedGeometry{
			Type:   KindLineString,
			Reason: fmt.Sprintf("got %d positions, want at least 2", len(positions)),
		}
	}

	line := make(LineString, 0, len(positions))
	for i, pos := range positions {
		lon, lat, err := lonLat(pos)
		if err != nil {
			return nil, &ErrMalformedGeometry{
				Type:   KindLineString,
				Reason: fmt.Sprintf("position %d %v", i, err),
			}
		}
		line = append(line, proj.FromLonLat(lon, lat))
	}

	return line, nil
}

// lonLat requires exactly two non-null numbers.
func lonLat(pos []*float64) (lon, lat float64, err error) {
	if len(pos) != 2 {
		return 0, 0, fmt.Errorf("has %d components, want 2", len(pos))
	}
	for i, c := range pos {
		if c == nil {
			return 0, 0, fmt.Errorf("component %d is null", i)
		}
	}
	return *pos[0], *pos[1], nil
}
