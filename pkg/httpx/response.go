package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error shape every endpoint returns: a
// human-readable detail plus optional per-field validation messages.
type ErrorBody struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a plain {detail} error body.
func WriteError(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, ErrorBody{Detail: detail})
}

// WriteValidationError writes a 422 with the per-field messages.
func WriteValidationError(w http.ResponseWriter, detail string, errs []string) {
	WriteJSON(w, http.StatusUnprocessableEntity, ErrorBody{Detail: detail, Errors: errs})
}

// NoCache marks a response as non-cacheable. Required for anything that
// carries credentials or user records.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
