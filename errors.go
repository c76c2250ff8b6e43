package client

import (
	"errors"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/shardqueue"
)

// ErrBackPressure is returned when the engine's internal shard queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool {
	return errors.Is(err, ErrBackPressure) || errors.Is(err, shardqueue.ErrQueueFull)
}

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrPermissionDenied  = apperrs.ErrPermissionDenied
	ErrMalformedResponse = apperrs.ErrMalformedResponse
)

// IsPermissionDenied reports whether err is a permission gate failure.
func IsPermissionDenied(err error) bool { return apperrs.IsPermissionDenied(err) }

// IsValidation reports whether err is a client-side input validation failure.
func IsValidation(err error) bool { return apperrs.IsValidation(err) }

// ValidationError is the client-side input rejection type.
type ValidationError = apperrs.ValidationError
