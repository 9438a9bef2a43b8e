package api

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned when an authenticated call is made without a
// session token in the context. Callers treat it as "nothing to show".
var ErrNoToken = errors.New("no access token")

// ErrMissingField is returned when a successful envelope lacks the
// expected payload key.
var ErrMissingField = errors.New("response is missing a field")

// Error is a failure reported by the asset API: a non-2xx status or an
// envelope with success set to false.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Message is the server-provided message, possibly empty.
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("asset api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("asset api: status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the text shown to the person in the alert dialog: the
// server message when the API sent one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
