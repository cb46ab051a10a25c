package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anirbanjana883/question-traker/store"
)

// maxBodyBytes bounds request bodies; the largest legitimate body is an update.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func writeOK(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func decodeBody(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", store.ErrInvalidRequest, err)
	}
	return nil
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeStoreError logs server-side failures and replies with the mapped status.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Debug(op+" rejected", "error", err)
	}
	writeError(w, status, publicMessage(err))
}

// publicMessage keeps the client-facing error strings the frontend already knows.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "Not found"
	case errors.Is(err, store.ErrSeedMissing):
		return "Seed data unavailable"
	case errors.Is(err, store.ErrInvalidRequest):
		return err.Error()
	default:
		return "Internal server error"
	}
}
