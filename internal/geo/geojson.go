// Package geo handles GeoJSON wire structures, geometry decoding and map projections.
package geo

import "encoding/json"

// Type tags of the GeoJSON objects accepted by the importer.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
)

// FeatureCollection is the top-level GeoJSON document.
// Features keep document order.
type FeatureCollection struct {
	Properties map[string]any `json:"properties,omitempty"`
	Type       string         `json:"type"`
	Features   []Feature      `json:"features"`
}

// Feature is a single geographic entity: one geometry plus free-form properties.
type Feature struct {
	Properties map[string]any `json:"properties"`
	Geometry   *RawGeometry   `json:"geometry"`
	Type       string         `json:"type"`
}

// RawGeometry is a geometry as it appears on the wire.
// Coordinates stay undecoded until the type tag has been checked.
type RawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"` // [Lon, Lat] or [[Lon, Lat], ...]
}
