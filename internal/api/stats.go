package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// GetSiteStats fetches the global movie/review counters shown in the footer.
func GetSiteStats(ctx context.Context, httpClient *http.Client, baseURL string) (*types.SiteStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/movies/stats", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apperrs.NewNetworkError("get site stats", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrs.NewHTTPError(resp.StatusCode, errorBody(resp), "get site stats")
	}
	var stats types.SiteStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
	}
	return &stats, nil
}
