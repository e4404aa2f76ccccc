package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"getloanoffer/logger"
	"getloanoffer/service"
)

// respondJSON encodes into a buffer first so a failed encode can still send a 500.
func respondJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn("failed to write response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

// respondServiceError maps validation failures to 400 and everything else to 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, internalMessage string) {
	if errors.Is(err, service.ErrValidation) {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	logger.Error(internalMessage, "path", r.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, internalMessage, nil)
}
