package types

import (
	"testing"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
)

func TestValidateRatingValue(t *testing.T) {
	t.Parallel()
	for _, v := range []int{1, 3, 5} {
		if err := ValidateRatingValue(v); err != nil {
			t.Fatalf("value %d: unexpected error: %v", v, err)
		}
	}
	for _, v := range []int{0, -1, 6, 100} {
		err := ValidateRatingValue(v)
		if !apperrs.IsValidation(err) {
			t.Fatalf("value %d: expected validation error, got %v", v, err)
		}
	}
}

func TestValidateReviewText(t *testing.T) {
	t.Parallel()
	if err := ValidateReviewText("отличный фильм"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, text := range []string{"", "   ", "\n\t"} {
		if err := ValidateReviewText(text); !apperrs.IsValidation(err) {
			t.Fatalf("text %q: expected validation error, got %v", text, err)
		}
	}
}

func TestValidateIDs(t *testing.T) {
	t.Parallel()
	if err := ValidateMovieID(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateMovieID(0); !apperrs.IsValidation(err) {
		t.Fatal("expected validation error for zero movie id")
	}
	if err := ValidateUserID(-5); !apperrs.IsValidation(err) {
		t.Fatal("expected validation error for negative user id")
	}
}

func TestValidateCredentials(t *testing.T) {
	t.Parallel()
	if err := ValidateCredentials("kira@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCredentials("", "secret"); !apperrs.IsValidation(err) {
		t.Fatal("expected validation error for empty email")
	}
	if err := ValidateCredentials("kira@example.com", ""); !apperrs.IsValidation(err) {
		t.Fatal("expected validation error for empty password")
	}
}
