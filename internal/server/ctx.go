package server

import (
	"github.com/bitmold/organicmaps/internal/config"
	"github.com/bitmold/organicmaps/internal/geo"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config     *config.Config
	Projection geo.Projection
}

// NewServerContext resolves the configured projection and prepares the handlers.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	proj, err := cfg.ProjectionFunc()
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("projection", cfg.Projection).
		Int64("max_body_size", cfg.MaxBodySize).
		Bool("minify", cfg.Minify).
		Msg("Server context initialized")

	return &ServerContext{
		Config:     cfg,
		Projection: proj,
	}, nil
}
