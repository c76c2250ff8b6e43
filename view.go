package client

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/kinovzor/kinovzor-client/internal/types"
)

// SortKey selects the catalog view ordering.
type SortKey string

const (
	// SortPopular is the default: newest entries (highest id) first.
	SortPopular SortKey = "popular"
	// SortTitle orders by title with locale-aware collation.
	SortTitle SortKey = "title"
	// SortYear orders by release year, newest first; missing year sorts last.
	SortYear SortKey = "year"
	// SortRating orders by review-derived average, best first; unrated
	// movies follow all rated ones.
	SortRating SortKey = "rating"
)

// GenreAll is the filter value that passes every movie.
const GenreAll = "all"

type viewState struct {
	genre string
	sort  SortKey
}

// SetGenreFilter installs an exact-match genre filter. GenreAll disables
// filtering.
func (e *Engine) SetGenreFilter(genre string) {
	e.mu.Lock()
	if e.view.genre == genre {
		e.mu.Unlock()
		return
	}
	e.view.genre = genre
	e.mu.Unlock()
	e.notify(TopicView)
}

// SetSortKey installs the view ordering.
func (e *Engine) SetSortKey(key SortKey) {
	e.mu.Lock()
	if e.view.sort == key {
		e.mu.Unlock()
		return
	}
	e.view.sort = key
	e.mu.Unlock()
	e.notify(TopicView)
}

// GenreFilter returns the active genre filter.
func (e *Engine) GenreFilter() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.genre
}

// SortKey returns the active view ordering.
func (e *Engine) SortKey() SortKey {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.sort
}

// VisibleMovies derives the filtered, sorted catalog view. The computation is
// pure over the current snapshot: calling it repeatedly without a state
// change yields the same order.
func (e *Engine) VisibleMovies() []Movie {
	e.mu.Lock()
	movies := make([]types.Movie, len(e.catalog))
	copy(movies, e.catalog)
	view := e.view
	aggs := make(map[int64]types.ReviewAggregate, len(e.aggregates))
	for id, a := range e.aggregates {
		aggs[id] = a
	}
	e.mu.Unlock()

	return applyView(movies, view.genre, view.sort, aggs, e.collator())
}

// applyView filters movies by genre and orders them by key. The input slice
// is modified in place; callers pass a copy. Sorting is stable so equal
// elements keep their catalog order.
func applyView(movies []types.Movie, genre string, key SortKey, aggs map[int64]types.ReviewAggregate, col *collate.Collator) []types.Movie {
	if genre != "" && genre != GenreAll {
		filtered := movies[:0]
		for _, m := range movies {
			if m.Genre == genre {
				filtered = append(filtered, m)
			}
		}
		movies = filtered
	}

	switch key {
	case SortTitle:
		sort.SliceStable(movies, func(i, j int) bool {
			return col.CompareString(movies[i].Title, movies[j].Title) < 0
		})
	case SortYear:
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].Year > movies[j].Year
		})
	case SortRating:
		sort.SliceStable(movies, func(i, j int) bool {
			ai, aj := aggs[movies[i].ID].Average, aggs[movies[j].ID].Average
			switch {
			case ai != nil && aj != nil:
				if *ai != *aj {
					return *ai > *aj
				}
				return movies[i].ID > movies[j].ID
			case ai != nil:
				return true // rated before unrated
			case aj != nil:
				return false
			default:
				return movies[i].ID > movies[j].ID
			}
		})
	default: // SortPopular and anything unrecognized
		sort.SliceStable(movies, func(i, j int) bool {
			return movies[i].ID > movies[j].ID
		})
	}
	return movies
}
