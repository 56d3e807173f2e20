package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes and the request logger.
func NewRouter(s *ServerContext) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	api.HandleFunc("/import", s.HandleImport).Methods(http.MethodPost)
	api.HandleFunc("/export", s.HandleExport).Methods(http.MethodPost)

	return RequestLogger(r)
}
