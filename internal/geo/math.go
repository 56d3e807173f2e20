package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxLat is the latitude at which the square Mercator world ends.
const MaxLat = 85.05112878

// Projection converts between geographic coordinates and the planar space
// records are stored in. Implementations must be deterministic.
type Projection interface {
	FromLonLat(lon, lat float64) orb.Point
	ToLonLat(p orb.Point) (lon, lat float64)
}

// Projection names accepted by ProjectionByName.
const (
	ProjectionMercator    = "mercator"
	ProjectionWebMercator = "web-mercator"
)

var (
	// Mercator is the application's internal space: x is the longitude and
	// y is the Mercator ordinate expressed in degrees, so the world spans
	// [-180, 180] on both axes.
	Mercator Projection = mercator{}

	// WebMercator is EPSG:3857 in meters.
	WebMercator Projection = webMercator{}
)

// ProjectionByName resolves a configured projection name. Empty means Mercator.
func ProjectionByName(name string) (Projection, error) {
	switch name {
	case "", ProjectionMercator:
		return Mercator, nil
	case ProjectionWebMercator:
		return WebMercator, nil
	}
	return nil, fmt.Errorf("unknown projection %q", name)
}

type mercator struct{}

// FromLonLat applies the forward Mercator projection.
// Latitude is clamped to ±MaxLat.
func (mercator) FromLonLat(lon, lat float64) orb.Point {
	if lat > MaxLat {
		lat = MaxLat
	} else if lat < -MaxLat {
		lat = -MaxLat
	}

	latRad := lat * (math.Pi / 180.0)
	mercatorY := math.Log(math.Tan(math.Pi*0.25 + latRad*0.5))

	return orb.Point{lon, mercatorY * (180.0 / math.Pi)}
}

// ToLonLat applies the inverse Mercator projection.
func (mercator) ToLonLat(p orb.Point) (lon, lat float64) {
	mercatorY := p[1] * (math.Pi / 180.0)
	latRad := (2.0 * math.Atan(math.Exp(mercatorY))) - (math.Pi * 0.5)

	return p[0], latRad * (180.0 / math.Pi)
}

type webMercator struct{}

func (webMercator) FromLonLat(lon, lat float64) orb.Point {
	return project.WGS84.ToMercator(orb.Point{lon, lat})
}

func (webMercator) ToLonLat(p orb.Point) (lon, lat float64) {
	ll := project.Mercator.ToWGS84(p)
	return ll[0], ll[1]
}
