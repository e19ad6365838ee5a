package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/avoronkov/minibank/internal/models"
)

func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// The status line is already out; the most we can do is log.
		slog.Error("failed to encode response body", "error", err.Error())
	}
}

func WriteError(w http.ResponseWriter, status int, errorMsg, details string) {
	WriteJSON(w, status, models.ErrorResponse{
		Error:   errorMsg,
		Message: details,
	})
}
