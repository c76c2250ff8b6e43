package client

import "github.com/kinovzor/kinovzor-client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	Movie  = types.Movie
	Review = types.Review
	Rating = types.Rating
	User   = types.User

	// Derived values
	RatingStats     = types.RatingStats
	ReviewAggregate = types.ReviewAggregate
	SiteStats       = types.SiteStats

	// Identity
	Session      = types.Session
	IdentityKind = types.IdentityKind

	// Requests
	RegisterRequest     = types.RegisterRequest
	LoginRequest        = types.LoginRequest
	CreateMovieRequest  = types.CreateMovieRequest
	CreateReviewRequest = types.CreateReviewRequest
)

// Identity levels.
const (
	IdentityAnonymous  = types.IdentityAnonymous
	IdentityGuest      = types.IdentityGuest
	IdentityRegistered = types.IdentityRegistered
)

// Errors re-exported in errors.go
