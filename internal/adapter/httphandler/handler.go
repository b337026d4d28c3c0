package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Message{Message: message})
}

// limitParam reads the ?limit query value, falling back when absent or
// not a positive integer.
func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	var limit int
	for _, c := range raw {
		if c < '0' || c > '9' {
			return fallback
		}
		limit = limit*10 + int(c-'0')
	}
	if limit < 1 {
		return fallback
	}
	return limit
}
