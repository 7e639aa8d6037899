package handler

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON envelope for all non-2xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encoding response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, errText, message string) {
	h.writeJSON(w, status, errorResponse{Success: false, Error: errText, Message: message})
}
