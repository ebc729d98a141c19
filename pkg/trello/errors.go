package trello

import (
	"errors"

	"github.com/moshloop/py-trello/internal/transport"
)

// APIError is a failed request to the Trello API. It carries the HTTP status
// code, the response text, and the target URL.
type APIError = transport.APIError

// Static errors for local precondition failures. These are raised before any
// network call is made.
var (
	// ErrTokenRequired is returned by webhook operations when no auth token
	// was passed in and none is configured on the client.
	ErrTokenRequired = errors.New("an auth token is required for webhook operations")

	// ErrAttachmentSource is returned by Card.Attach when both or neither of
	// a file and a URL are provided.
	ErrAttachmentSource = errors.New("provide either a file or a url, and not both")
)

// IsUnauthorized checks if the error is an HTTP 401 failure, so callers can
// special-case re-authentication.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// IsResourceUnavailable checks if the error is a non-200 API failure of any
// kind, including 401.
func IsResourceUnavailable(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsTokenRequired checks if the error is the missing-token precondition
// failure.
func IsTokenRequired(err error) bool {
	return errors.Is(err, ErrTokenRequired)
}
