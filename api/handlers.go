// Package api provides HTTP handlers, middleware, and routing for the
// quote-reminder service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/malcomkamau/motivation"
)

// maxBodyBytes caps request payloads at 1MB.
const maxBodyBytes = 1024 * 1024

// decodeJSON decodes the request body into v with strict field checking.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// statusForError maps engine sentinel errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, motivation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, motivation.ErrInvalidInput),
		errors.Is(err, motivation.ErrInvalidQuote),
		errors.Is(err, motivation.ErrInvalidTime),
		errors.Is(err, motivation.ErrInvalidCategory),
		errors.Is(err, motivation.ErrBackupVersion):
		return http.StatusBadRequest
	case errors.Is(err, motivation.ErrNoQuotes):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError is a helper to send JSON error responses.
func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	resp := map[string]interface{}{
		"error": map[string]string{
			"message": message,
		},
	}
	if err != nil {
		resp["error"].(map[string]string)["details"] = err.Error()
	}
	s.logger.Error("API Error", "status", status, "message", message, "path", r.URL.Path, "error", err)
	respondWithJSONRaw(w, status, resp)
}

// respondWithJSON is a helper to send JSON responses.
func (s *Server) respondWithJSON(w http.ResponseWriter, _ *http.Request, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Failed to marshal response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// respondWithJSONRaw is a lower-level helper for error payloads.
func respondWithJSONRaw(w http.ResponseWriter, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Critical: Failed to marshal error response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
