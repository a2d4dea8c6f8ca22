package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorBody is the envelope every non-2xx JSON response carries.
type ErrorBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON response with the given status code. It sets
// the Content-Type header and disables caching.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the standard error envelope with the given status code.
func Error(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, ErrorBody{Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// Registration records carry credential metadata, so responses must not be
// cached by intermediaries.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// ParseSpaceDelimitedFields splits a space-delimited string into fields,
// e.g. a scope list. Returns nil when s is empty or all whitespace.
func ParseSpaceDelimitedFields(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
