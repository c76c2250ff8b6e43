package client

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrs "github.com/kinovzor/kinovzor-client/internal/errors"
	"github.com/kinovzor/kinovzor-client/internal/job"
	"github.com/kinovzor/kinovzor-client/internal/shardqueue"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// Mutation shard keys. Same-entity mutations serialize FIFO; different
// entities run in parallel.
func movieKey(movieID int64) string { return fmt.Sprintf("movie:%d", movieID) }
func favKey(userID int64) string    { return fmt.Sprintf("fav:%d", userID) }

// runMutation routes a mutation through the shard executor and blocks for its
// final outcome. The request id correlates enqueue and failure log lines.
func (e *Engine) runMutation(ctx context.Context, op, key string, fn func(context.Context) error) error {
	reqID := uuid.NewString()
	mutationsTotal.WithLabelValues(op).Inc()
	log.Debug().Str("op", op).Str("key", key).Str("shard", job.ShardLabel(key)).Str("request_id", reqID).Msg("engine: mutation enqueued")

	err := e.exec.ExecuteWait(ctx, key, shardqueue.JobFunc(fn))
	if err != nil {
		if errors.Is(err, shardqueue.ErrQueueFull) {
			err = ErrBackPressure
		}
		mutationFailuresTotal.WithLabelValues(op).Inc()
		log.Warn().Err(err).Str("op", op).Str("key", key).Str("request_id", reqID).Msg("engine: mutation failed")
		return err
	}
	return nil
}

// SubmitRating records the signed-in user's 1..5 rating for a movie. On
// success the movie's rating stats are refetched so an open detail context
// shows the fresh aggregate.
func (e *Engine) SubmitRating(ctx context.Context, movieID int64, value int) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.CanMutate() {
		return apperrs.ErrPermissionDenied
	}
	if err := types.ValidateRatingValue(value); err != nil {
		return err
	}

	err := e.runMutation(ctx, "rating", movieKey(movieID), func(jctx context.Context) error {
		_, err := e.client.SubmitRating(jctx, movieID, sess.UserID(), value)
		return err
	})
	if err != nil {
		return err
	}

	stats, err := e.client.GetRatingStats(ctx, movieID)
	if err != nil {
		// The rating is recorded; a failed stats refresh only delays the
		// updated aggregate until the next detail open.
		log.Warn().Err(err).Int64("movie_id", movieID).Msg("engine: rating stats refresh failed")
		return nil
	}
	e.mu.Lock()
	changed := e.detail.status == DetailOpen && e.detail.movieID == movieID
	if changed {
		e.detail.stats = stats
		e.detail.pendingRating = nil // the selection has been submitted
	}
	e.mu.Unlock()
	if changed {
		e.notify(TopicDetail)
	}
	return nil
}

// SubmitPendingRating submits the star selection previously recorded with
// SetPendingRating for the open movie.
func (e *Engine) SubmitPendingRating(ctx context.Context) error {
	e.mu.Lock()
	status := e.detail.status
	movieID := e.detail.movieID
	pending := e.detail.pendingRating
	e.mu.Unlock()
	if status != DetailOpen {
		return &apperrs.ValidationError{Field: "detail", Reason: "no movie is open"}
	}
	if pending == nil {
		return &apperrs.ValidationError{Field: "rating", Reason: "no selection to submit"}
	}
	return e.SubmitRating(ctx, movieID, *pending)
}

// SubmitReview submits a review for a movie. Text must be non-blank; whether
// a star rating is mandatory depends on the RequireReviewRating policy flag.
// The created review starts unapproved and enters an open detail context on
// that movie per the visibility policy.
func (e *Engine) SubmitReview(ctx context.Context, movieID int64, text string, rating *int) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.CanMutate() {
		return apperrs.ErrPermissionDenied
	}
	if err := types.ValidateReviewText(text); err != nil {
		return err
	}
	if rating == nil && e.cfg.RequireReviewRating {
		return &apperrs.ValidationError{Field: "rating", Reason: "is required"}
	}
	if rating != nil {
		if err := types.ValidateRatingValue(*rating); err != nil {
			return err
		}
	}

	var created *types.Review
	err := e.runMutation(ctx, "review", movieKey(movieID), func(jctx context.Context) error {
		r, err := e.client.CreateReview(jctx, movieID, sess.UserID(), types.CreateReviewRequest{Text: text, Rating: rating})
		created = r
		return err
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	changed := e.detail.status == DetailOpen && e.detail.movieID == movieID &&
		(created.Approved || e.cfg.ShowOwnPendingReviews)
	if changed {
		// Backend orders reviews newest-first; the fresh one goes in front.
		e.detail.reviews = append([]types.Review{*created}, e.detail.reviews...)
		e.detail.aggregate = types.DeriveAggregate(e.detail.reviews)
		e.aggregates[movieID] = e.detail.aggregate
	}
	e.mu.Unlock()
	if changed {
		e.notify(TopicDetail)
	}
	return nil
}

// ToggleFavorite flips movieID's membership on the signed-in user's
// favorites list. Membership is decided and re-derived inside the serialized
// job, so double toggles execute FIFO and the final state is what the backend
// holds, never an inference from prior local state.
//
// The flip direction is decided once per toggle and sticks across executor
// retries: a retried job must not re-read membership after its own flip
// already landed, or a transient failure past the flip would silently undo
// it. Add/remove themselves are safe to replay (duplicate add and missing
// remove both report convergence).
func (e *Engine) ToggleFavorite(ctx context.Context, movieID int64) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.CanMutate() {
		return apperrs.ErrPermissionDenied
	}
	if err := types.ValidateMovieID(movieID); err != nil {
		return err
	}
	userID := sess.UserID()

	var (
		decided bool
		adding  bool
		updated map[int64]bool
	)
	err := e.runMutation(ctx, "favorite", favKey(userID), func(jctx context.Context) error {
		if !decided {
			current, err := e.client.ListFavorites(jctx, userID)
			if err != nil {
				return err
			}
			adding = true
			for _, m := range current {
				if m.ID == movieID {
					adding = false
					break
				}
			}
			decided = true
		}
		var err error
		if adding {
			err = e.client.AddFavorite(jctx, userID, movieID)
		} else {
			err = e.client.RemoveFavorite(jctx, userID, movieID)
		}
		if err != nil {
			return err
		}
		after, err := e.client.ListFavorites(jctx, userID)
		if err != nil {
			return err
		}
		set := make(map[int64]bool, len(after))
		for _, m := range after {
			set[m.ID] = true
		}
		updated = set
		return nil
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	same := e.session.UserID() == userID
	if same {
		e.favorites = updated
	}
	e.mu.Unlock()
	if same {
		e.notify(TopicFavorites)
	}
	return nil
}

// DeleteReview removes a review (moderators only; checked before any network
// I/O). On success the review disappears from an open detail context on
// movieID; otherwise there is no client-side effect.
func (e *Engine) DeleteReview(ctx context.Context, reviewID, movieID int64) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.IsModerator() {
		return apperrs.ErrPermissionDenied
	}

	err := e.runMutation(ctx, "delete_review", movieKey(movieID), func(jctx context.Context) error {
		return e.client.DeleteReview(jctx, reviewID)
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	changed := false
	if e.detail.status == DetailOpen && e.detail.movieID == movieID {
		kept := e.detail.reviews[:0]
		for _, r := range e.detail.reviews {
			if r.ID != reviewID {
				kept = append(kept, r)
			}
		}
		if len(kept) != len(e.detail.reviews) {
			e.detail.reviews = kept
			e.detail.aggregate = types.DeriveAggregate(kept)
			e.aggregates[movieID] = e.detail.aggregate
			changed = true
		}
	}
	e.mu.Unlock()
	if changed {
		e.notify(TopicDetail)
	}
	return nil
}

// ApproveReview marks a review approved (moderators only). An open detail
// context on movieID reflects the flipped flag immediately.
func (e *Engine) ApproveReview(ctx context.Context, reviewID, movieID int64) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.IsModerator() {
		return apperrs.ErrPermissionDenied
	}

	err := e.runMutation(ctx, "approve_review", movieKey(movieID), func(jctx context.Context) error {
		return e.client.ApproveReview(jctx, reviewID)
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	changed := false
	if e.detail.status == DetailOpen && e.detail.movieID == movieID {
		for i := range e.detail.reviews {
			if e.detail.reviews[i].ID == reviewID && !e.detail.reviews[i].Approved {
				e.detail.reviews[i].Approved = true
				changed = true
			}
		}
	}
	e.mu.Unlock()
	if changed {
		e.notify(TopicDetail)
	}
	return nil
}

// RefreshFavorites re-derives the favorites membership set from the backend.
// Guests and anonymous sessions hold an empty set.
func (e *Engine) RefreshFavorites(ctx context.Context) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if !sess.CanMutate() {
		e.mu.Lock()
		e.favorites = make(map[int64]bool)
		e.mu.Unlock()
		e.notify(TopicFavorites)
		return nil
	}

	movies, err := e.client.ListFavorites(ctx, sess.UserID())
	if err != nil {
		return err
	}
	set := make(map[int64]bool, len(movies))
	for _, m := range movies {
		set[m.ID] = true
	}

	e.mu.Lock()
	same := e.session.UserID() == sess.UserID()
	if same {
		e.favorites = set
	}
	e.mu.Unlock()
	if same {
		e.notify(TopicFavorites)
	}
	return nil
}

// AwaitConsistency blocks until all previously submitted mutations for
// movieID have been executed. It works by submitting a no-op job and waiting
// for it to run, thereby guaranteeing FIFO ordering has flushed.
func (e *Engine) AwaitConsistency(ctx context.Context, movieID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	j := job.New(func(context.Context) error {
		close(done)
		return nil
	})
	if err := e.exec.Submit(ctx, movieKey(movieID), j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// IsFavorite reports whether movieID is on the signed-in user's favorites
// list per the last backend-derived membership set.
func (e *Engine) IsFavorite(movieID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.favorites[movieID]
}

// FavoriteIDs returns the sorted favorite movie ids.
func (e *Engine) FavoriteIDs() []int64 {
	e.mu.Lock()
	ids := make([]int64, 0, len(e.favorites))
	for id := range e.favorites {
		ids = append(ids, id)
	}
	e.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
