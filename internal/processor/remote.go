package processor

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"
	"github.com/bitmold/organicmaps/internal/serdes"

	"github.com/rs/zerolog/log"
)

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ImportURL downloads a GeoJSON document and imports it into a new FileData.
func ImportURL(client *http.Client, url string, proj geo.Projection) (*kml.FileData, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	fd := kml.NewFileData()
	if err := serdes.NewDeserializer(fd, serdes.WithProjection(proj)).Deserialize(resp.Body); err != nil {
		return nil, err
	}

	log.Info().
		Str("source", url).
		Int("bookmarks", len(fd.Bookmarks)).
		Int("tracks", len(fd.Tracks)).
		Msg("GeoJSON imported")

	return fd, nil
}
