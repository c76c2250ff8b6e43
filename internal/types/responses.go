package types

// ------------------------------
// Response Types
// ------------------------------

// StatusAck mirrors the backend's bare acknowledgment payloads
// ({"status": "deleted"}, {"status": "added to favorites"}, ...).
type StatusAck struct {
	Status string `json:"status"`
}

// SiteStats mirrors the /api/movies/stats counters.
type SiteStats struct {
	MoviesCount  int `json:"movies_count"`
	ReviewsCount int `json:"reviews_count"`
}
