// Package kml holds the application's bookmark and track records and the
// file-level aggregate importers write into.
package kml

import "github.com/paulmach/orb"

// DefaultLangCode is the locale slot used for text without locale information.
const DefaultLangCode int8 = 0

// LocalizableString maps a locale code to text.
// A nil LocalizableString means the value is absent.
type LocalizableString map[int8]string

// NewDefaultString returns a LocalizableString holding s in the default locale.
func NewDefaultString(s string) LocalizableString {
	return LocalizableString{DefaultLangCode: s}
}

// Default returns the default-locale text.
func (l LocalizableString) Default() (string, bool) {
	s, ok := l[DefaultLangCode]
	return s, ok
}

// BookmarkData is a point of interest.
type BookmarkData struct {
	Name        LocalizableString `json:"name,omitempty" yaml:"name,omitempty"`
	Description LocalizableString `json:"description,omitempty" yaml:"description,omitempty"`
	Point       orb.Point         `json:"point" yaml:"point"` // projected
}

// MultiGeometry is the set of polylines making up a track.
type MultiGeometry struct {
	Lines []orb.LineString `json:"lines" yaml:"lines"`
}

// AddLine appends a polyline.
func (g *MultiGeometry) AddLine(line orb.LineString) {
	g.Lines = append(g.Lines, line)
}

// PointsCount returns the number of points over all lines.
func (g MultiGeometry) PointsCount() int {
	n := 0
	for _, l := range g.Lines {
		n += len(l)
	}
	return n
}

// TrackData is a polyline record.
type TrackData struct {
	Name     LocalizableString `json:"name,omitempty" yaml:"name,omitempty"`
	Geometry MultiGeometry     `json:"geometry" yaml:"geometry"`
}

// FileData is the caller-owned aggregate filled by importers.
// Importers only ever append to it.
type FileData struct {
	Bookmarks []BookmarkData `json:"bookmarks" yaml:"bookmarks"`
	Tracks    []TrackData    `json:"tracks" yaml:"tracks"`
}

// NewFileData returns an empty aggregate whose lists marshal as [] rather than null.
func NewFileData() *FileData {
	return &FileData{
		Bookmarks: []BookmarkData{},
		Tracks:    []TrackData{},
	}
}
