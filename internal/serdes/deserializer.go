package serdes

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"

	"github.com/tidwall/gjson"
)

// Deserializer reads GeoJSON FeatureCollections into a caller-owned FileData.
//
// Every successful call appends to FileData.Bookmarks and FileData.Tracks
// in document order; nothing is ever cleared. A failed call appends nothing.
// A Deserializer is not safe for concurrent use on the same FileData.
type Deserializer struct {
	data *kml.FileData
	opts options
}

// NewDeserializer returns a Deserializer writing into data.
// A nil data makes every call fail with an *ErrDeserialize.
func NewDeserializer(data *kml.FileData, opts ...Option) *Deserializer {
	return &Deserializer{data: data, opts: newOptions(opts)}
}

// Deserialize parses the whole of r. Any failure is an *ErrDeserialize.
func (d *Deserializer) Deserialize(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ErrDeserialize{Feature: -1, Err: fmt.Errorf("read GeoJSON: %w", err)}
	}

	return d.DeserializeBytes(data)
}

// DeserializeBytes is Deserialize over an in-memory document.
func (d *Deserializer) DeserializeBytes(data []byte) error {
	if d.data == nil {
		return &ErrDeserialize{Feature: -1, Err: &ErrStructure{Reason: "no FileData to write into"}}
	}

	recs, err := parseDocument(data, d.opts.proj)
	if err != nil {
		d.logFailure(data, err)
		return err
	}

	recs.commit(d.data)

	d.opts.logger.Debug().
		Int("bookmarks", len(recs.bookmarks)).
		Int("tracks", len(recs.tracks)).
		Msg("GeoJSON parsed")

	return nil
}

// logFailure prints the corrupted document for debugging and restore purposes.
// The failing feature goes out at warn, the whole document only at debug.
func (d *Deserializer) logFailure(data []byte, err *ErrDeserialize) {
	if len(data) == 0 || data[0] != '{' {
		return
	}

	event := d.opts.logger.Warn().Err(err)
	if err.Feature >= 0 {
		if feature := gjson.GetBytes(data, fmt.Sprintf("features.%d", err.Feature)); feature.Exists() {
			event = event.Int("feature", err.Feature).RawJSON("feature_json", []byte(feature.Raw))
		}
	}
	event.Int("size", len(data)).Msg("Could not parse GeoJSON")

	d.opts.logger.Debug().
		Str("geojson", string(data)).
		Msg("Corrupted GeoJSON document")
}

// parseDocument decodes a complete document into call-local records.
func parseDocument(data []byte, proj geo.Projection) (*records, *ErrDeserialize) {
	var doc geo.FeatureCollection
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrDeserialize{Feature: -1, Err: &ErrStructure{Reason: "not a JSON object of the expected shape", Err: err}}
	}
	if doc.Type != geo.TypeFeatureCollection {
		return nil, &ErrDeserialize{Feature: -1, Err: &ErrStructure{
			Reason: fmt.Sprintf("document type is %q, want %q", doc.Type, geo.TypeFeatureCollection),
		}}
	}
	if doc.Features == nil {
		return nil, &ErrDeserialize{Feature: -1, Err: &ErrStructure{Reason: "missing features"}}
	}

	recs := &records{}
	for i, f := range doc.Features {
		if err := parseFeature(f, proj, recs); err != nil {
			return nil, &ErrDeserialize{Feature: i, Err: err}
		}
	}

	return recs, nil
}

func parseFeature(f geo.Feature, proj geo.Projection, recs *records) error {
	if f.Type != geo.TypeFeature {
		return &ErrStructure{Reason: fmt.Sprintf("feature type is %q, want %q", f.Type, geo.TypeFeature)}
	}
	if f.Geometry == nil {
		return &ErrStructure{Reason: "missing geometry"}
	}

	g, err := geo.Decode(*f.Geometry, proj)
	if err != nil {
		return err
	}

	props, err := extractProperties(f.Properties)
	if err != nil {
		return err
	}

	return recs.add(g, props)
}
