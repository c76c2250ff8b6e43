// Package errors classifies failures from the kinovzor backend so the
// mutation executor can tell transient trouble (worth retrying) from
// terminal rejections (fail fast), and defines the client-side error
// vocabulary shared by the engine and the API layer.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory decides the retry policy for a failed backend call.
type ErrorCategory int

const (
	// Recoverable failures may succeed on a later attempt: 5xx responses,
	// timeouts, connection resets.
	Recoverable ErrorCategory = iota

	// Irrecoverable failures will not improve with retries: 400, 401, 403,
	// 404 and other client-side rejections.
	Irrecoverable
)

func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError carries a backend failure together with its retry category
// and, for HTTP failures, the status and a body snippet for diagnostics.
type ClassifiedError struct {
	Category   ErrorCategory
	StatusCode int    // 0 for non-HTTP failures
	Body       string // response body snippet
	Underlying error
}

func (e *ClassifiedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
	}
	return fmt.Sprintf("[%s] %v", e.Category, e.Underlying)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable reports whether err must not be retried. A malformed
// backend payload counts as irrecoverable even when the HTTP exchange
// succeeded: replaying the request cannot fix the response shape, and for
// a write it would duplicate an operation that already landed.
func IsIrrecoverable(err error) bool {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category == Irrecoverable
	}
	return errors.Is(err, ErrMalformedResponse)
}
