package handler

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Detail string `json:"detail"`
}

// WriteError writes a standard error response with the given status code
// and detail message.
func WriteError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, errorResponse{Detail: detail})
}
