package client

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/kinovzor/kinovzor-client/internal/types"
)

// RefreshCatalog fetches the full movie list and swaps the cached snapshot
// atomically: readers see either the old list or the new one, never a mix.
// On failure the previous snapshot is untouched and the error is returned.
func (e *Engine) RefreshCatalog(ctx context.Context) error {
	movies, err := e.client.ListMovies(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("engine: catalog refresh failed, keeping previous snapshot")
		return err
	}

	genres := distinctGenres(movies)

	e.mu.Lock()
	e.catalog = movies
	e.genres = genres
	e.mu.Unlock()
	e.notify(TopicCatalog)
	return nil
}

// Movies returns a copy of the cached catalog snapshot.
func (e *Engine) Movies() []Movie {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Movie, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// Genres returns the distinct genres present in the catalog, sorted, with
// GenreAll prepended. The list is recomputed only on catalog change.
func (e *Engine) Genres() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.genres))
	copy(out, e.genres)
	return out
}

// Aggregate returns the review-derived aggregate for a movie: count of
// visible reviews and mean of the ratings among them. Movies whose reviews
// were never fetched report {0, nil}.
func (e *Engine) Aggregate(movieID int64) ReviewAggregate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aggregates[movieID]
}

// distinctGenres collects the sorted unique genres with GenreAll first.
func distinctGenres(movies []types.Movie) []string {
	seen := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		if m.Genre != "" {
			seen[m.Genre] = struct{}{}
		}
	}
	genres := make([]string, 0, len(seen)+1)
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return append([]string{GenreAll}, genres...)
}
