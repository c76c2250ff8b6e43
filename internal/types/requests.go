package types

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginRequest holds credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateMovieRequest holds parameters for a new catalog entry (admin tooling).
type CreateMovieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Genre       string `json:"genre"`
	Year        int    `json:"year"`
	PosterURL   string `json:"poster_url,omitempty"`
}

// CreateReviewRequest holds parameters for a new review. Rating stays null
// on the wire when the author did not pick one.
type CreateReviewRequest struct {
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

// SubmitRatingRequest holds a 1..5 rating value.
type SubmitRatingRequest struct {
	Value int `json:"value"`
}
