package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
)

// movieListWrapper matches the historical {"items": [...]} payload shape.
type movieListWrapper struct {
	Items *[]Movie `json:"items"`
}

// NormalizeMovieList coerces the catalog payload into a well-typed list.
// Accepted shapes: a JSON array, a single movie object, an object wrapping
// the list under "items", and null/empty (zero movies). Anything else is a
// malformed response.
func NormalizeMovieList(data []byte) ([]Movie, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []Movie{}, nil
	}

	switch data[0] {
	case '[':
		var movies []Movie
		if err := json.Unmarshal(data, &movies); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
		}
		if movies == nil {
			movies = []Movie{}
		}
		return movies, nil

	case '{':
		var wrapper movieListWrapper
		if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Items != nil {
			return *wrapper.Items, nil
		}
		var single Movie
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrs.ErrMalformedResponse, err)
		}
		if single.ID == 0 && single.Title == "" {
			return nil, fmt.Errorf("%w: object is neither a movie nor a wrapped list", apperrs.ErrMalformedResponse)
		}
		return []Movie{single}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected catalog payload", apperrs.ErrMalformedResponse)
	}
}
