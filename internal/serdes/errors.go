// Package serdes converts GeoJSON documents to and from kml.FileData.
package serdes

import "fmt"

// ErrStructure indicates a document that does not have the shape of a
// GeoJSON FeatureCollection
type ErrStructure struct {
	Err    error
	Reason string
}

func (e *ErrStructure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid GeoJSON structure: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid GeoJSON structure: %s", e.Reason)
}

func (e *ErrStructure) Unwrap() error { return e.Err }

// ErrDeserialize is returned by Deserializer.Deserialize for every failure.
// Feature is the zero-based index of the failing feature, or -1 when the
// document failed as a whole.
type ErrDeserialize struct {
	Err     error
	Feature int
}

func (e *ErrDeserialize) Error() string {
	if e.Feature >= 0 {
		return fmt.Sprintf("could not parse GeoJSON: feature %d: %v", e.Feature, e.Err)
	}
	return fmt.Sprintf("could not parse GeoJSON: %v", e.Err)
}

func (e *ErrDeserialize) Unwrap() error { return e.Err }
