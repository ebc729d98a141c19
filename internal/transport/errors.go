package transport

import "fmt"

// APIError represents a failed request to the Trello API. A 401 response is
// the unauthorized variant; every other non-200 status is a generic resource
// failure. Both carry the original status code, response text, and target URL
// so callers can diagnose without re-issuing the request.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s at %s (HTTP status: %d)", e.Body, e.URL, e.StatusCode)
}

// Unauthorized reports whether the failure was an HTTP 401.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == 401
}
