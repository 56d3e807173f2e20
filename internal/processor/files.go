// Package processor runs file-level import and export jobs.
package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"
	"github.com/bitmold/organicmaps/internal/serdes"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Output formats understood by Encode.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatGeoJSON = "geojson"
)

// Stdin is read when ImportFile gets an empty path.
var Stdin io.Reader = os.Stdin

// ImportFile reads a GeoJSON file (stdin if path is empty) into a new FileData.
func ImportFile(path string, proj geo.Projection) (*kml.FileData, error) {
	src := Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		// Explicitly ignore close error as it's a read-only operation
		defer func() { _ = f.Close() }()
		src = f
	}

	fd := kml.NewFileData()
	if err := serdes.NewDeserializer(fd, serdes.WithProjection(proj)).Deserialize(src); err != nil {
		return nil, err
	}

	log.Info().
		Str("source", sourceName(path)).
		Int("bookmarks", len(fd.Bookmarks)).
		Int("tracks", len(fd.Tracks)).
		Msg("GeoJSON imported")

	return fd, nil
}

// Encode renders fd in the requested format.
func Encode(fd *kml.FileData, format string, proj geo.Projection, minify bool) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(fd, "", "  ")
	case FormatYAML:
		return yaml.Marshal(fd)
	case FormatGeoJSON:
		var buf bytes.Buffer
		err := serdes.NewWriter(&buf, serdes.WithProjection(proj), serdes.WithMinify(minify)).Write(fd)
		return buf.Bytes(), err
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// Save writes data to path, creating parent directories. An empty path
// writes to stdout.
func Save(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	// We care about write errors on close
	if err := f.Close(); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to close file")
		return err
	}

	return nil
}

func sourceName(path string) string {
	if path == "" {
		return "stdin"
	}
	return path
}
