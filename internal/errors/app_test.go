package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Message(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	if got := err.Error(); got != "invalid rating: must be between 1 and 5" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestIsValidation(t *testing.T) {
	t.Parallel()
	ve := &ValidationError{Field: "text", Reason: "must not be empty"}
	if !IsValidation(ve) {
		t.Fatal("direct validation error not detected")
	}
	if !IsValidation(fmt.Errorf("submit review: %w", ve)) {
		t.Fatal("wrapped validation error not detected")
	}
	if IsValidation(errors.New("plain")) {
		t.Fatal("plain error misdetected as validation")
	}
}

func TestIsIrrecoverable_MalformedResponse(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w: unexpected EOF", ErrMalformedResponse)
	if !IsIrrecoverable(err) {
		t.Fatalf("malformed payload must fail fast, got retryable: %v", err)
	}
	if IsIrrecoverable(errors.New("plain")) {
		t.Fatal("unclassified error misdetected as irrecoverable")
	}
}

func TestIsIrrecoverable_WrappedClassified(t *testing.T) {
	t.Parallel()
	classified := NewHTTPError(403, "", "delete review")
	if !IsIrrecoverable(fmt.Errorf("mutation: %w", classified)) {
		t.Fatal("wrapped irrecoverable classification not detected")
	}
	if IsIrrecoverable(fmt.Errorf("mutation: %w", NewHTTPError(503, "", "delete review"))) {
		t.Fatal("recoverable classification misdetected")
	}
}

func TestIsPermissionDenied(t *testing.T) {
	t.Parallel()
	if !IsPermissionDenied(ErrPermissionDenied) {
		t.Fatal("sentinel not detected")
	}
	if !IsPermissionDenied(fmt.Errorf("gate: %w", ErrPermissionDenied)) {
		t.Fatal("wrapped sentinel not detected")
	}
	if IsPermissionDenied(ErrMalformedResponse) {
		t.Fatal("unrelated sentinel misdetected")
	}
}
