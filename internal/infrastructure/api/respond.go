// Package api is the thin HTTP transport over the application services.
// Handlers decode JSON, call exactly one service operation and translate the
// error taxonomy into status codes.
package api

import (
	"encoding/json"
	"net/http"

	"storeseo-core/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP status codes: validation 400, not
// found 404, state conflict 409, remote unavailable 502, persistence failure
// and anything unclassified 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsStateConflict(err):
		status = http.StatusConflict
	case domain.IsRemoteUnavailable(err):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "invalid JSON payload"}
	}
	return nil
}

func decodeJSONBytes(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return &domain.ValidationError{Field: "body", Reason: "invalid JSON payload"}
	}
	return nil
}
