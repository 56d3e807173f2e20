package serdes

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bitmold/organicmaps/internal/kml"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
)

const mimeJSON = "application/json"

// Writer exports a FileData as a GeoJSON FeatureCollection.
// Bookmarks become Point features, every track line a LineString feature,
// with coordinates projected back to [lon, lat].
type Writer struct {
	w    io.Writer
	opts options
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	return &Writer{w: w, opts: newOptions(opts)}
}

// Write encodes fd.
func (w *Writer) Write(fd *kml.FileData) error {
	fc := w.featureCollection(fd)

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal GeoJSON: %w", err)
	}

	if w.opts.minify {
		m := minify.New()
		m.AddFunc(mimeJSON, minjson.Minify)
		if data, err = m.Bytes(mimeJSON, data); err != nil {
			return fmt.Errorf("minify GeoJSON: %w", err)
		}
	}

	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("write GeoJSON: %w", err)
	}

	w.opts.logger.Debug().
		Int("bookmarks", len(fd.Bookmarks)).
		Int("tracks", len(fd.Tracks)).
		Int("bytes", len(data)).
		Msg("GeoJSON written")

	return nil
}

func (w *Writer) featureCollection(fd *kml.FileData) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, b := range fd.Bookmarks {
		f := geojson.NewFeature(w.unproject(b.Point))
		setText(f.Properties, propName, b.Name)
		setText(f.Properties, propDescription, b.Description)
		fc.Append(f)
	}

	for _, t := range fd.Tracks {
		for _, line := range t.Geometry.Lines {
			ls := make(orb.LineString, 0, len(line))
			for _, p := range line {
				ls = append(ls, w.unproject(p))
			}
			f := geojson.NewFeature(ls)
			setText(f.Properties, propName, t.Name)
			fc.Append(f)
		}
	}

	return fc
}

func (w *Writer) unproject(p orb.Point) orb.Point {
	lon, lat := w.opts.proj.ToLonLat(p)
	return orb.Point{lon, lat}
}

func setText(props geojson.Properties, key string, s kml.LocalizableString) {
	if text, ok := s.Default(); ok {
		props[key] = text
	}
}
