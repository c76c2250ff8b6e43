package errors

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied reports that the current identity is not allowed to
// perform an operation. The gate fires before any network I/O.
var ErrPermissionDenied = errors.New("permission denied")

// ErrMalformedResponse reports a backend payload whose shape could not be
// normalized into the expected type.
var ErrMalformedResponse = errors.New("malformed response")

// IsPermissionDenied reports whether err is a permission gate failure.
func IsPermissionDenied(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// ValidationError reports input rejected client-side, before any network
// round trip.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err (or its chain) is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
