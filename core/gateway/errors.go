package gateway

import (
	"errors"
	"fmt"
)

// StatusError is an API error carrying the HTTP status code of the failed
// call. The retry policy classifies errors by this code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Code)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Code, e.Message)
}

// StatusOf returns the HTTP status code carried by err, or 0 if err carries
// none.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
