// Package server exposes the GeoJSON importer over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bitmold/organicmaps/internal/kml"
	"github.com/bitmold/organicmaps/internal/serdes"

	"github.com/rs/zerolog/log"
)

const contentTypeGeoJSON = "application/geo+json"

// apiError is the JSON body of every non-2xx response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleImport converts a GeoJSON request body into FileData JSON.
func (s *ServerContext) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxBodySize)

	fd := kml.NewFileData()
	err := serdes.NewDeserializer(fd,
		serdes.WithProjection(s.Projection),
		serdes.WithLogger(log.Logger),
	).Deserialize(r.Body)

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_GEOJSON", "Could not parse GeoJSON", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, fd)
}

// HandleExport converts a FileData JSON request body into GeoJSON.
func (s *ServerContext) HandleExport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxBodySize)

	var fd kml.FileData
	if err := json.NewDecoder(r.Body).Decode(&fd); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "Invalid file data", err.Error())
		return
	}

	w.Header().Set("Content-Type", contentTypeGeoJSON)
	writer := serdes.NewWriter(w,
		serdes.WithProjection(s.Projection),
		serdes.WithMinify(s.Config.Minify),
		serdes.WithLogger(log.Logger),
	)
	if err := writer.Write(&fd); err != nil {
		// Headers are already out, nothing left to tell the client
		log.Error().Err(err).Msg("Failed to write GeoJSON response")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, apiError{Code: code, Message: message, Details: details})
}
