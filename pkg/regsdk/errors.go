package regsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-2xx registry response. Status carries the HTTP status
// code and Message the server's human-readable explanation.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("registry: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether the error is a 404.
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsConflict reports whether the error is a 409.
func (e *APIError) IsConflict() bool { return e.Status == http.StatusConflict }

// parseAPIError turns an error response body into a typed *APIError. Bodies
// that are not the expected JSON shape still produce a usable error.
func parseAPIError(status int, body []byte) *APIError {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		return &APIError{Status: status, Message: er.Message}
	}
	return &APIError{Status: status, Message: http.StatusText(status)}
}
