package types

import (
	"strings"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
)

// ValidateRatingValue checks the 1..5 bound shared by ratings and review
// ratings.
func ValidateRatingValue(value int) error {
	if value < 1 || value > 5 {
		return &apperrs.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	return nil
}

// ValidateReviewText rejects empty or whitespace-only review bodies before
// any network round trip.
func ValidateReviewText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &apperrs.ValidationError{Field: "text", Reason: "must not be empty"}
	}
	return nil
}

// ValidateMovieID checks that a movie id is present.
func ValidateMovieID(id int64) error {
	if id <= 0 {
		return &apperrs.ValidationError{Field: "movieId", Reason: "is required"}
	}
	return nil
}

// ValidateUserID checks that a user id is present.
func ValidateUserID(id int64) error {
	if id <= 0 {
		return &apperrs.ValidationError{Field: "userId", Reason: "is required"}
	}
	return nil
}

// ValidateCredentials checks that login/register fields are present.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return &apperrs.ValidationError{Field: "email", Reason: "is required"}
	}
	if password == "" {
		return &apperrs.ValidationError{Field: "password", Reason: "is required"}
	}
	return nil
}
