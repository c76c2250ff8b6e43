package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// SubmitRating records userID's star rating for a movie. The backend upserts
// per (user, movie), so repeat submissions replace the prior value.
func SubmitRating(ctx context.Context, httpClient *http.Client, baseURL string, movieID, userID int64, value int) (*types.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return nil, err
	}
	if err := types.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := types.ValidateRatingValue(value); err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.SubmitRatingRequest{Value: value})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/ratings?user_id=%d", baseURL, movieID, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("submit rating", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "submit rating")
	}
	var rating types.Rating
	if err := json.NewDecoder(resp.Body).Decode(&rating); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &rating, nil
}

// GetRatingStats fetches the aggregate star-rating summary for a movie.
// Average is nil when nobody has rated yet.
func GetRatingStats(ctx context.Context, httpClient *http.Client, baseURL string, movieID int64) (*types.RatingStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/rating-stats", baseURL, movieID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("get rating stats", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "get rating stats")
	}
	var stats types.RatingStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &stats, nil
}
