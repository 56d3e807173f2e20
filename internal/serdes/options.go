package serdes

import (
	"github.com/bitmold/organicmaps/internal/geo"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	proj   geo.Projection
	logger zerolog.Logger
	minify bool
}

// Option configures a Deserializer or a Writer.
type Option func(*options)

// WithProjection selects the projection between lon/lat and record space.
// Default: geo.Mercator.
func WithProjection(p geo.Projection) Option {
	return func(o *options) {
		if p != nil {
			o.proj = p
		}
	}
}

// WithLogger replaces the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMinify makes the Writer emit minified GeoJSON.
func WithMinify(minify bool) Option {
	return func(o *options) { o.minify = minify }
}

func newOptions(opts []Option) options {
	o := options{
		proj:   geo.Mercator,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
