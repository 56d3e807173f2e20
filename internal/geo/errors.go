package geo

import "fmt"

// ErrMalformedGeometry indicates a coordinate payload that does not match its declared kind
type ErrMalformedGeometry struct {
	Type   Kind
	Reason string
}

func (e *ErrMalformedGeometry) Error() string {
	return fmt.Sprintf("malformed %v geometry: %s", e.Type, e.Reason)
}

// ErrUnsupportedGeometryType indicates a geometry type tag outside {Point, LineString}
type ErrUnsupportedGeometryType struct {
	Type string
}

func (e *ErrUnsupportedGeometryType) Error() string {
	return fmt.Sprintf("unsupported geometry type: %q", e.Type)
}
