package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// ListMovies fetches the full catalog. The payload is normalized per the
// defensive rules in types.NormalizeMovieList, so callers always receive a
// well-typed list.
func ListMovies(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("list movies", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "list movies")
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return types.NormalizeMovieList(body)
}

// GetMovie fetches a single movie by id.
func GetMovie(ctx context.Context, httpClient *http.Client, baseURL string, movieID int64) (*types.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/%d", baseURL, movieID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("get movie", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "get movie")
	}
	var m types.Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &m, nil
}

// CreateMovie adds a new catalog entry (admin tooling path).
func CreateMovie(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateMovieRequest) (*types.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("create movie", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "create movie")
	}
	var m types.Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &m, nil
}
