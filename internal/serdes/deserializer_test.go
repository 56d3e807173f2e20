package serdes

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineThenPoint = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {
        "color": "red"
      },
      "geometry": {
        "coordinates": [
          [14.949382505528291, 8.16007148457335],
          [26.888888114204264, 9.708105796659268],
          [37.54707497642465, 6.884595662842159]
        ],
        "type": "LineString"
      }
    },
    {
      "type": "Feature",
      "geometry": {
        "coordinates": [31.02177966625902, 29.8310316130992],
        "type": "Point"
      }
    }
  ]
}`

func parse(t *testing.T, doc string, opts ...Option) (*kml.FileData, error) {
	t.Helper()
	fd := kml.NewFileData()
	err := NewDeserializer(fd, opts...).Deserialize(strings.NewReader(doc))
	return fd, err
}

func pointFeature(lon, lat float64, props string) string {
	if props == "" {
		props = "{}"
	}
	coords, _ := json.Marshal([]float64{lon, lat})
	return `{"type":"Feature","properties":` + props + `,"geometry":{"type":"Point","coordinates":` + string(coords) + `}}`
}

func lineFeature(props string, coords ...[2]float64) string {
	if props == "" {
		props = "{}"
	}
	raw, _ := json.Marshal(coords)
	return `{"type":"Feature","properties":` + props + `,"geometry":{"type":"LineString","coordinates":` + string(raw) + `}}`
}

func collection(features ...string) string {
	return `{"type":"FeatureCollection","features":[` + strings.Join(features, ",") + `]}`
}

func TestDeserializeLineWithStylingOnly(t *testing.T) {
	doc := collection(lineFeature(`{"color":"red"}`,
		[2]float64{14.949382505528291, 8.16007148457335},
		[2]float64{26.888888114204264, 9.708105796659268},
		[2]float64{37.54707497642465, 6.884595662842159},
	))

	fd, err := parse(t, doc)
	require.NoError(t, err)

	assert.Empty(t, fd.Bookmarks)
	require.Len(t, fd.Tracks, 1)

	track := fd.Tracks[0]
	assert.Nil(t, track.Name)
	require.Len(t, track.Geometry.Lines, 1)
	assert.Equal(t, orb.LineString{
		geo.Mercator.FromLonLat(14.949382505528291, 8.16007148457335),
		geo.Mercator.FromLonLat(26.888888114204264, 9.708105796659268),
		geo.Mercator.FromLonLat(37.54707497642465, 6.884595662842159),
	}, track.Geometry.Lines[0])
}

func TestDeserializePointWithLabel(t *testing.T) {
	doc := collection(pointFeature(30.568097444337525, 50.46385629798317,
		`{"marker-color":"#000000","label":"Hello GeoJson","description":"First import test"}`))

	fd, err := parse(t, doc)
	require.NoError(t, err)

	assert.Empty(t, fd.Tracks)
	require.Len(t, fd.Bookmarks, 1)

	b := fd.Bookmarks[0]
	assert.Equal(t, kml.NewDefaultString("Hello GeoJson"), b.Name)
	assert.Equal(t, kml.NewDefaultString("First import test"), b.Description)
	assert.Equal(t, geo.Mercator.FromLonLat(30.568097444337525, 50.46385629798317), b.Point)
}

func TestDeserializeLineThenPoint(t *testing.T) {
	fd, err := parse(t, lineThenPoint)
	require.NoError(t, err)

	require.Len(t, fd.Bookmarks, 1)
	require.Len(t, fd.Tracks, 1)
	assert.Equal(t, geo.Mercator.FromLonLat(31.02177966625902, 29.8310316130992), fd.Bookmarks[0].Point)
	assert.Len(t, fd.Tracks[0].Geometry.Lines[0], 3)
}

func TestDeserializeKeepsRelativeOrder(t *testing.T) {
	doc := collection(
		pointFeature(1, 1, `{"name":"p1"}`),
		lineFeature(`{"name":"l1"}`, [2]float64{0, 0}, [2]float64{1, 1}),
		pointFeature(2, 2, `{"name":"p2"}`),
		pointFeature(3, 3, `{"name":"p3"}`),
		lineFeature(`{"name":"l2"}`, [2]float64{2, 2}, [2]float64{3, 3}),
	)

	fd, err := parse(t, doc)
	require.NoError(t, err)

	names := func(get func(i int) kml.LocalizableString, n int) []string {
		out := make([]string, 0, n)
		for i := 0; i < n; i++ {
			s, _ := get(i).Default()
			out = append(out, s)
		}
		return out
	}
	assert.Equal(t, []string{"p1", "p2", "p3"},
		names(func(i int) kml.LocalizableString { return fd.Bookmarks[i].Name }, len(fd.Bookmarks)))
	assert.Equal(t, []string{"l1", "l2"},
		names(func(i int) kml.LocalizableString { return fd.Tracks[i].Name }, len(fd.Tracks)))
}

func TestDeserializeNamePrecedence(t *testing.T) {
	doc := collection(
		pointFeature(1, 1, `{"label":"from label","name":"from name"}`),
		lineFeature(`{"name":"track name","label":"track label"}`, [2]float64{0, 0}, [2]float64{1, 1}),
		lineFeature(`{"label":"only label"}`, [2]float64{0, 0}, [2]float64{1, 1}),
	)

	fd, err := parse(t, doc)
	require.NoError(t, err)

	assert.Equal(t, kml.NewDefaultString("from name"), fd.Bookmarks[0].Name)
	assert.Equal(t, kml.NewDefaultString("track name"), fd.Tracks[0].Name)
	assert.Equal(t, kml.NewDefaultString("only label"), fd.Tracks[1].Name)
}

func TestDeserializeEmptyCollection(t *testing.T) {
	fd, err := parse(t, `{"type":"FeatureCollection","features":[],"properties":{"title":"nothing"}}`)
	require.NoError(t, err)
	assert.Empty(t, fd.Bookmarks)
	assert.Empty(t, fd.Tracks)
}

func TestDeserializeUnsupportedGeometryFailsWholeDocument(t *testing.T) {
	doc := collection(
		pointFeature(1, 1, `{"name":"valid"}`),
		lineFeature("", [2]float64{0, 0}, [2]float64{1, 1}),
		`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}`,
		pointFeature(2, 2, ""),
	)

	fd, err := parse(t, doc)

	var derr *ErrDeserialize
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 2, derr.Feature)

	var unsupported *geo.ErrUnsupportedGeometryType
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "Polygon", unsupported.Type)

	assert.Empty(t, fd.Bookmarks)
	assert.Empty(t, fd.Tracks)
}

func TestDeserializeMalformedPoint(t *testing.T) {
	for _, coords := range []string{`[1]`, `[1, 2, 3]`, `[]`, `[30.5, null]`, `[null, 50.4]`, `[null, null]`} {
		doc := `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":` + coords + `}}]}`

		_, err := parse(t, doc)

		var malformed *geo.ErrMalformedGeometry
		require.ErrorAs(t, err, &malformed, coords)
		assert.Equal(t, geo.KindPoint, malformed.Type)

		var derr *ErrDeserialize
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, 0, derr.Feature)
	}
}

func TestDeserializeMalformedLinePair(t *testing.T) {
	doc := collection(lineFeature("", [2]float64{0, 0}, [2]float64{1, 1}), `{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1]]}}`)

	_, err := parse(t, doc)

	var malformed *geo.ErrMalformedGeometry
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, geo.KindLineString, malformed.Type)

	var derr *ErrDeserialize
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Feature)
}

func TestDeserializeNullLineComponent(t *testing.T) {
	doc := collection(
		pointFeature(1, 1, ""),
		`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[1,null],[2,3]]}}`,
	)

	fd, err := parse(t, doc)

	var malformed *geo.ErrMalformedGeometry
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, geo.KindLineString, malformed.Type)

	var derr *ErrDeserialize
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, 1, derr.Feature)

	assert.Empty(t, fd.Bookmarks)
	assert.Empty(t, fd.Tracks)
}

func TestDeserializeStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		feature int
	}{
		{"not json", `{"type":`, -1},
		{"array", `[]`, -1},
		{"null", `null`, -1},
		{"wrong document type", `{"type":"Feature","features":[]}`, -1},
		{"missing features", `{"type":"FeatureCollection"}`, -1},
		{"null features", `{"type":"FeatureCollection","features":null}`, -1},
		{"features not array", `{"type":"FeatureCollection","features":{}}`, -1},
		{"wrong feature type", collection(`{"type":"Thing","geometry":{"type":"Point","coordinates":[1,2]}}`), 0},
		{"missing geometry", collection(pointFeature(1, 1, ""), `{"type":"Feature","properties":{}}`), 1},
		{"null geometry", collection(`{"type":"Feature","properties":{},"geometry":null}`), 0},
		{"numeric name", collection(pointFeature(1, 1, `{"name":42}`)), 0},
		{"object description", collection(pointFeature(1, 1, `{"description":{"text":"x"}}`)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd, err := parse(t, tt.doc)

			var structural *ErrStructure
			require.ErrorAs(t, err, &structural)

			var derr *ErrDeserialize
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.feature, derr.Feature)

			assert.Empty(t, fd.Bookmarks)
			assert.Empty(t, fd.Tracks)
		})
	}
}

func TestDeserializeIgnoresNonStringStyling(t *testing.T) {
	doc := collection(lineFeature(`{"name":"river","stroke-width":2,"stroke-opacity":0.5,"visible":true}`,
		[2]float64{0, 0}, [2]float64{1, 1}))

	fd, err := parse(t, doc)
	require.NoError(t, err)
	require.Len(t, fd.Tracks, 1)
	assert.Equal(t, kml.NewDefaultString("river"), fd.Tracks[0].Name)
}

func TestDeserializeAppendsAcrossCalls(t *testing.T) {
	fd := kml.NewFileData()
	d := NewDeserializer(fd)

	require.NoError(t, d.DeserializeBytes([]byte(lineThenPoint)))
	require.NoError(t, d.DeserializeBytes([]byte(collection(pointFeature(5, 5, `{"name":"second"}`)))))

	require.Len(t, fd.Bookmarks, 2)
	require.Len(t, fd.Tracks, 1)
	assert.Equal(t, kml.NewDefaultString("second"), fd.Bookmarks[1].Name)

	// a failing call leaves earlier results alone
	err := d.DeserializeBytes([]byte(collection(pointFeature(6, 6, ""), `{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[1,2]]}}`)))
	require.Error(t, err)
	assert.Len(t, fd.Bookmarks, 2)
	assert.Len(t, fd.Tracks, 1)
}

func TestDeserializeWithProjection(t *testing.T) {
	fd, err := parse(t, collection(pointFeature(180, 0, "")), WithProjection(geo.WebMercator))
	require.NoError(t, err)
	assert.Equal(t, geo.WebMercator.FromLonLat(180, 0), fd.Bookmarks[0].Point)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestDeserializeReadError(t *testing.T) {
	var buf bytes.Buffer
	fd := kml.NewFileData()
	err := NewDeserializer(fd, WithLogger(zerolog.New(&buf))).Deserialize(failingReader{})

	var derr *ErrDeserialize
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, -1, derr.Feature)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Empty(t, buf.String())
}

func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestDeserializeLogsCorruptedDocument(t *testing.T) {
	doc := collection(pointFeature(1, 1, ""), `{"type":"Feature","properties":{"name":"bad"},"geometry":{"type":"Polygon","coordinates":[]}}`)

	var buf bytes.Buffer
	_, err := parse(t, doc, WithLogger(zerolog.New(&buf)))
	require.Error(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)

	warn := entries[0]
	assert.Equal(t, "warn", warn["level"])
	assert.EqualValues(t, 1, warn["feature"])
	assert.EqualValues(t, len(doc), warn["size"])
	assert.NotContains(t, warn, "geojson")

	feature, ok := warn["feature_json"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "bad"}, feature["properties"])

	debug := entries[1]
	assert.Equal(t, "debug", debug["level"])
	assert.Equal(t, doc, debug["geojson"])
}

func TestDeserializeKeepsDocumentOutOfWarnLogs(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":"nope"}`

	var buf bytes.Buffer
	_, err := parse(t, doc, WithLogger(zerolog.New(&buf).Level(zerolog.WarnLevel)))
	require.Error(t, err)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.NotContains(t, entries[0], "geojson")
	assert.NotContains(t, entries[0], "feature_json")
}

func TestDeserializeNilFileData(t *testing.T) {
	err := NewDeserializer(nil).Deserialize(strings.NewReader(lineThenPoint))

	var structural *ErrStructure
	require.ErrorAs(t, err, &structural)

	var derr *ErrDeserialize
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, -1, derr.Feature)
}

func TestDeserializeSkipsLogForNonObjectInput(t *testing.T) {
	for _, doc := range []string{"", "[1,2]", " {\"type\":\"nope\"}", "garbage"} {
		var buf bytes.Buffer
		_, err := parse(t, doc, WithLogger(zerolog.New(&buf)))
		require.Error(t, err, doc)
		assert.Empty(t, buf.String(), doc)
	}
}
