package serdes

import (
	"fmt"

	"github.com/bitmold/organicmaps/internal/geo"
	"github.com/bitmold/organicmaps/internal/kml"

	"github.com/paulmach/orb"
)

// bucket is the output list a feature lands in.
type bucket int

const (
	bucketNone bucket = iota
	bucketBookmarks
	bucketTracks
)

// classify routes a decoded geometry to exactly one output list.
func classify(g geo.Geometry) bucket {
	switch g.(type) {
	case geo.Point:
		return bucketBookmarks
	case geo.LineString:
		return bucketTracks
	}
	return bucketNone
}

// records collects what one call produces before it is committed to the
// caller's FileData.
type records struct {
	bookmarks []kml.BookmarkData
	tracks    []kml.TrackData
}

func (r *records) add(g geo.Geometry, p properties) error {
	switch classify(g) {
	case bucketBookmarks:
		r.bookmarks = append(r.bookmarks, newBookmark(g.(geo.Point), p))
	case bucketTracks:
		r.tracks = append(r.tracks, newTrack(g.(geo.LineString), p))
	default:
		return fmt.Errorf("no record type for %v geometry", g.Kind())
	}
	return nil
}

// commit appends the collected records to fd, keeping anything already there.
func (r *records) commit(fd *kml.FileData) {
	fd.Bookmarks = append(fd.Bookmarks, r.bookmarks...)
	fd.Tracks = append(fd.Tracks, r.tracks...)
}

func newBookmark(pt geo.Point, p properties) kml.BookmarkData {
	return kml.BookmarkData{
		Name:        p.Name,
		Description: p.Description,
		Point:       orb.Point(pt),
	}
}

func newTrack(line geo.LineString, p properties) kml.TrackData {
	track := kml.TrackData{Name: p.Name}
	track.Geometry.AddLine(orb.LineString(line))
	return track
}
