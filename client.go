// Package client is the Kinovzor SDK: a typed REST client for the movie
// catalog backend plus an in-process Engine that keeps catalog, view, detail,
// favorites, and session state consistent across overlapping asynchronous
// operations. Renderers consume the Engine through snapshot accessors and the
// topic-based change notifications in notify.go.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/kinovzor/kinovzor-client/internal/api"
)

// Client is a thin synchronous facade over the backend REST API. All state
// handling lives in Engine; Client methods are stateless request/response
// calls safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given backend base URL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	return c
}

// --------------------------------------------------------------------
// Movie operations - delegated to internal/api
// --------------------------------------------------------------------

// ListMovies fetches the full catalog as a normalized list.
func (c *Client) ListMovies(ctx context.Context) ([]Movie, error) {
	return api.ListMovies(ctx, c.http, c.baseURL)
}

// GetMovie fetches a single movie by id.
func (c *Client) GetMovie(ctx context.Context, movieID int64) (*Movie, error) {
	return api.GetMovie(ctx, c.http, c.baseURL, movieID)
}

// CreateMovie adds a new catalog entry (admin tooling path).
func (c *Client) CreateMovie(ctx context.Context, req CreateMovieRequest) (*Movie, error) {
	return api.CreateMovie(ctx, c.http, c.baseURL, req)
}

// GetSiteStats fetches the global movie/review counters.
func (c *Client) GetSiteStats(ctx context.Context) (*SiteStats, error) {
	return api.GetSiteStats(ctx, c.http, c.baseURL)
}

// --------------------------------------------------------------------
// Review operations - delegated to internal/api
// --------------------------------------------------------------------

// ListReviews fetches a movie's reviews, newest first.
func (c *Client) ListReviews(ctx context.Context, movieID int64, approvedOnly bool) ([]Review, error) {
	return api.ListReviews(ctx, c.http, c.baseURL, movieID, approvedOnly)
}

// CreateReview submits a review on behalf of userID. Prefer
// Engine.SubmitReview, which adds permission gates and FIFO sequencing.
func (c *Client) CreateReview(ctx context.Context, movieID, userID int64, req CreateReviewRequest) (*Review, error) {
	return api.CreateReview(ctx, c.http, c.baseURL, movieID, userID, req)
}

// ApproveReview flips a review to approved.
func (c *Client) ApproveReview(ctx context.Context, reviewID int64) error {
	return api.ApproveReview(ctx, c.http, c.baseURL, reviewID)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, reviewID int64) error {
	return api.DeleteReview(ctx, c.http, c.baseURL, reviewID)
}

// --------------------------------------------------------------------
// Rating operations - delegated to internal/api
// --------------------------------------------------------------------

// SubmitRating records a 1..5 rating; the backend upserts per (user, movie).
func (c *Client) SubmitRating(ctx context.Context, movieID, userID int64, value int) (*Rating, error) {
	return api.SubmitRating(ctx, c.http, c.baseURL, movieID, userID, value)
}

// GetRatingStats fetches the aggregate rating summary for a movie.
func (c *Client) GetRatingStats(ctx context.Context, movieID int64) (*RatingStats, error) {
	return api.GetRatingStats(ctx, c.http, c.baseURL, movieID)
}

// --------------------------------------------------------------------
// Favorite operations - delegated to internal/api
// --------------------------------------------------------------------

// AddFavorite adds a movie to a user's favorites. A duplicate add converges.
func (c *Client) AddFavorite(ctx context.Context, userID, movieID int64) error {
	_, err := api.AddFavorite(ctx, c.http, c.baseURL, userID, movieID)
	return err
}

// RemoveFavorite removes a movie from a user's favorites. A missing entry
// converges.
func (c *Client) RemoveFavorite(ctx context.Context, userID, movieID int64) error {
	_, err := api.RemoveFavorite(ctx, c.http, c.baseURL, userID, movieID)
	return err
}

// ListFavorites fetches a user's favorite movies.
func (c *Client) ListFavorites(ctx context.Context, userID int64) ([]Movie, error) {
	return api.ListFavorites(ctx, c.http, c.baseURL, userID)
}

// --------------------------------------------------------------------
// User operations - delegated to internal/api
// --------------------------------------------------------------------

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return api.Register(ctx, c.http, c.baseURL, req)
}

// Login authenticates with email/password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*User, error) {
	return api.Login(ctx, c.http, c.baseURL, req)
}

// GetMe fetches the profile for a known user id.
func (c *Client) GetMe(ctx context.Context, userID int64) (*User, error) {
	return api.GetMe(ctx, c.http, c.baseURL, userID)
}
