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

// ListReviews fetches a movie's reviews ordered newest-first by the backend.
// With approvedOnly false the result includes unapproved reviews; the caller
// is responsible for filtering them per its visibility policy.
func ListReviews(ctx context.Context, httpClient *http.Client, baseURL string, movieID int64, approvedOnly bool) ([]types.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/reviews?approved_only=%t", baseURL, movieID, approvedOnly)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("list reviews", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "list reviews")
	}
	var reviews []types.Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	if reviews == nil {
		reviews = []types.Review{}
	}
	return reviews, nil
}

// CreateReview submits a new review for a movie on behalf of userID.
func CreateReview(ctx context.Context, httpClient *http.Client, baseURL string, movieID, userID int64, req types.CreateReviewRequest) (*types.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return nil, err
	}
	if err := types.ValidateUserID(userID); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/reviews?user_id=%d", baseURL, movieID, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("create review", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "create review")
	}
	var review types.Review
	if err := json.NewDecoder(resp.Body).Decode(&review); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &review, nil
}

// ApproveReview flips a review to approved (moderator curation).
func ApproveReview(ctx context.Context, httpClient *http.Client, baseURL string, reviewID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/movies/reviews/%d/approve", baseURL, reviewID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apperrs.NewNetworkError("approve review", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "approve review")
	}
	return nil
}

// DeleteReview removes a review (moderator curation).
func DeleteReview(ctx context.Context, httpClient *http.Client, baseURL string, reviewID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/movies/reviews/%d", baseURL, reviewID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apperrs.NewNetworkError("delete review", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "delete review")
	}
	return nil
}
