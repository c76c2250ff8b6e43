package client

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// DetailStatus is the lifecycle state of the single active detail context.
type DetailStatus int

const (
	DetailClosed DetailStatus = iota
	DetailLoading
	DetailOpen
	DetailFailed
)

// String returns a human-readable status name for logs.
func (s DetailStatus) String() string {
	switch s {
	case DetailClosed:
		return "closed"
	case DetailLoading:
		return "loading"
	case DetailOpen:
		return "open"
	case DetailFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DetailView is a renderer-facing snapshot of the detail context. Reviews and
// Aggregate are always mutually consistent: both derive from the same fetch.
type DetailView struct {
	Status    DetailStatus
	MovieID   int64
	Movie     *Movie
	Reviews   []Review
	Aggregate ReviewAggregate
	Stats     *RatingStats
	// PendingRating is the user's not-yet-submitted star selection, if any.
	PendingRating *int
	Err           error
}

type detailState struct {
	status        DetailStatus
	movieID       int64
	movie         *types.Movie
	reviews       []types.Review
	aggregate     types.ReviewAggregate
	stats         *types.RatingStats
	pendingRating *int
	err           error
}

// Detail returns a snapshot of the detail context.
func (e *Engine) Detail() DetailView {
	e.mu.Lock()
	defer e.mu.Unlock()

	reviews := make([]Review, len(e.detail.reviews))
	copy(reviews, e.detail.reviews)
	return DetailView{
		Status:        e.detail.status,
		MovieID:       e.detail.movieID,
		Movie:         e.detail.movie,
		Reviews:       reviews,
		Aggregate:     e.detail.aggregate,
		Stats:         e.detail.stats,
		PendingRating: e.detail.pendingRating,
		Err:           e.detail.err,
	}
}

// SetPendingRating records the user's star selection on the active detail
// context before it is submitted. The selection lives and dies with the
// context: opening another movie or closing the detail view discards it.
func (e *Engine) SetPendingRating(value int) error {
	if err := types.ValidateRatingValue(value); err != nil {
		return err
	}
	e.mu.Lock()
	if e.detail.status != DetailOpen && e.detail.status != DetailLoading {
		e.mu.Unlock()
		return &apperrs.ValidationError{Field: "detail", Reason: "no movie is open"}
	}
	e.detail.pendingRating = &value
	e.mu.Unlock()
	e.notify(TopicDetail)
	return nil
}

// ClearPendingRating drops the unsubmitted star selection, if any.
func (e *Engine) ClearPendingRating() {
	e.mu.Lock()
	changed := e.detail.pendingRating != nil
	e.detail.pendingRating = nil
	e.mu.Unlock()
	if changed {
		e.notify(TopicDetail)
	}
}

// OpenMovie makes movieID the active detail context. Any previously active or
// loading context is discarded immediately; results from superseded fetches
// are dropped when they arrive. The three reads (movie, reviews, rating
// stats) run concurrently and apply in one critical section so the visible
// review set and its aggregate never diverge.
func (e *Engine) OpenMovie(ctx context.Context, movieID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	e.epoch++
	epoch := e.epoch
	sess := e.session
	e.detail = detailState{status: DetailLoading, movieID: movieID}
	e.mu.Unlock()
	e.notify(TopicDetail)

	approvedOnly := !e.cfg.ShowOwnPendingReviews

	var (
		movie   *types.Movie
		reviews []types.Review
		stats   *types.RatingStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := e.client.GetMovie(gctx, movieID)
		movie = m
		return err
	})
	g.Go(func() error {
		r, err := e.client.ListReviews(gctx, movieID, approvedOnly)
		reviews = r
		return err
	})
	g.Go(func() error {
		s, err := e.client.GetRatingStats(gctx, movieID)
		stats = s
		return err
	})
	err := g.Wait()

	e.mu.Lock()
	if epoch != e.epoch {
		e.mu.Unlock()
		staleDetailDropsTotal.Inc()
		log.Debug().Int64("movie_id", movieID).Uint64("epoch", epoch).Msg("engine: dropped stale detail result")
		return nil
	}
	if err != nil {
		e.detail = detailState{status: DetailFailed, movieID: movieID, err: err}
		e.mu.Unlock()
		e.notify(TopicDetail)
		return err
	}

	visible := visibleReviews(reviews, sess, e.cfg.ShowOwnPendingReviews)
	agg := types.DeriveAggregate(visible)
	e.aggregates[movieID] = agg
	e.detail = detailState{
		status:        DetailOpen,
		movieID:       movieID,
		movie:         movie,
		reviews:       visible,
		aggregate:     agg,
		stats:         stats,
		pendingRating: e.detail.pendingRating, // a selection made while loading survives
	}
	e.mu.Unlock()
	e.notify(TopicDetail)
	return nil
}

// CloseDetail discards the active detail context. In-flight reads for the
// closed epoch are dropped when they complete.
func (e *Engine) CloseDetail() {
	e.mu.Lock()
	if e.detail.status == DetailClosed {
		e.mu.Unlock()
		return
	}
	e.epoch++
	e.detail = detailState{}
	e.mu.Unlock()
	e.notify(TopicDetail)
}

// visibleReviews applies the review visibility policy: approved reviews plus,
// when showOwnPending is set, the signed-in user's own unapproved ones. With
// showOwnPending off the backend already filtered to approved.
func visibleReviews(reviews []types.Review, sess types.Session, showOwnPending bool) []types.Review {
	if !showOwnPending {
		return reviews
	}
	own := sess.UserID()
	visible := make([]types.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.Approved || (own > 0 && r.UserID == own) {
			visible = append(visible, r)
		}
	}
	return visible
}
