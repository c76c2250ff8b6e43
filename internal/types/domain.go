package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Movie is a single catalog entry. Movies are owned by the catalog cache and
// immutable once fetched; only a full catalog refresh replaces them.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	Description string `json:"description,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
}

// Review is a user-submitted review. Rating is optional; new reviews start
// unapproved until a moderator approves them.
type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movie_id"`
	UserID    int64     `json:"user_id"`
	Text      string    `json:"text"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Approved  bool      `json:"approved"`
}

// Rating is a single user's 1..5 score for a movie. The backend upserts on
// resubmission, so one (user, movie) pair holds at most one Rating.
type Rating struct {
	ID      int64 `json:"id"`
	MovieID int64 `json:"movie_id"`
	UserID  int64 `json:"user_id"`
	Value   int   `json:"value"`
}

// User is a registered account.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsModerator bool   `json:"is_moderator,omitempty"`
}

// RatingStats is the backend's rating aggregate for one movie.
// Average is nil when the movie has no ratings.
type RatingStats struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}

// ReviewAggregate is derived client-side from the most recently fetched
// visible review set for a movie. It is never persisted; always a pure
// function of that set.
type ReviewAggregate struct {
	Count   int      `json:"count"`
	Average *float64 `json:"average"`
}

// DeriveAggregate computes the aggregate for a review set: Count is the
// number of visible reviews, Average the mean of the ratings present among
// them (nil when none carries a rating).
func DeriveAggregate(reviews []Review) ReviewAggregate {
	agg := ReviewAggregate{Count: len(reviews)}
	var sum, rated int
	for _, r := range reviews {
		if r.Rating != nil {
			sum += *r.Rating
			rated++
		}
	}
	if rated > 0 {
		avg := float64(sum) / float64(rated)
		agg.Average = &avg
	}
	return agg
}
