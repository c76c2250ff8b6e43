package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// AddFavorite puts movieID on userID's favorites list. The backend rejects
// duplicates with 400; alreadyPresent reports that case so callers can treat
// it as convergence rather than failure.
func AddFavorite(ctx context.Context, httpClient *http.Client, baseURL string, userID, movieID int64) (alreadyPresent bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := types.ValidateUserID(userID); err != nil {
		return false, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return false, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/favorites?user_id=%d", baseURL, movieID, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return false, apperrs.NewNetworkError("add favorite", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return false, nil
	case http.StatusBadRequest:
		// "Already in favorites" - the desired membership already holds.
		return true, nil
	default:
		return false, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "add favorite")
	}
}

// RemoveFavorite drops movieID from userID's favorites list. A 404 means the
// entry was already gone; alreadyAbsent reports that case.
func RemoveFavorite(ctx context.Context, httpClient *http.Client, baseURL string, userID, movieID int64) (alreadyAbsent bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := types.ValidateUserID(userID); err != nil {
		return false, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return false, err
	}
	url := fmt.Sprintf("%s/api/movies/%d/favorites?user_id=%d", baseURL, movieID, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return false, apperrs.NewNetworkError("remove favorite", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return false, nil
	case http.StatusNotFound:
		return true, nil
	default:
		return false, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "remove favorite")
	}
}

// ListFavorites fetches userID's favorite movies.
func ListFavorites(ctx context.Context, httpClient *http.Client, baseURL string, userID int64) ([]types.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateUserID(userID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/user/%d/favorites", baseURL, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("list favorites", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "list favorites")
	}
	var movies []types.Movie
	if err := json.NewDecoder(resp.Body).Decode(&movies); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	if movies == nil {
		movies = []types.Movie{}
	}
	return movies, nil
}
