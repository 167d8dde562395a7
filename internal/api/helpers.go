package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kritanta/cartmates/internal/models"
)

// errorBody is the error envelope: {"error": {"code": ..., "message": ...}}.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Don't leak internals.
		slog.Error("Request failed", "error", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: errorCode(err), Message: msg}})
}

// decodeJSON parses the request body into dst, returning a ValidationError
// on malformed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("invalid request body: %v", err)
	}
	return nil
}
