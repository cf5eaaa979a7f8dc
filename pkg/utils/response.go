package utils

import (
	"net/http"

	"github.com/goccy/go-json"
)

// errorBody is the single error envelope every endpoint returns.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes data as a JSON response. The status line is committed
// before encoding, so an encode failure can no longer change it.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteError writes the uniform error envelope. The message must already be
// safe to show to the caller.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorBody{Error: message})
}
