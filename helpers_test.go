package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kinovzor/kinovzor-client/internal/shardqueue"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// memStore is an in-memory SessionStore for tests.
type memStore struct {
	mu   sync.Mutex
	sess types.Session
	set  bool
}

func (m *memStore) Load() types.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return types.AnonymousSession()
	}
	return m.sess
}

func (m *memStore) Save(s types.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess, m.set = s, true
	return nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = false
	return nil
}

// syncExecutor runs jobs inline, removing queue timing from engine tests.
type syncExecutor struct{}

func (syncExecutor) Submit(ctx context.Context, _ string, j shardqueue.Job) error {
	return j.Run(ctx)
}

func (syncExecutor) ExecuteWait(ctx context.Context, _ string, j shardqueue.Job) error {
	return j.Run(ctx)
}

func (syncExecutor) Stop() {}

// tripFunc adapts a closure to http.RoundTripper.
type tripFunc func(*http.Request) (*http.Response, error)

func (f tripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// topicRecorder captures emitted topics.
type topicRecorder struct {
	mu     sync.Mutex
	topics []Topic
}

func (r *topicRecorder) record(t Topic) {
	r.mu.Lock()
	r.topics = append(r.topics, t)
	r.mu.Unlock()
}

func (r *topicRecorder) count(t Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.topics {
		if got == t {
			n++
		}
	}
	return n
}

// fakeBackend is an in-memory rendition of the REST API used by engine tests.
type fakeBackend struct {
	mu           sync.Mutex
	movies       []Movie
	reviews      map[int64][]Review
	stats        map[int64]RatingStats
	favorites    map[int64]map[int64]bool
	users        map[string]User // by email
	nextReviewID int64

	// movieGate, when set for a movie id, blocks GET /api/movies/{id} until
	// the channel closes. Used to simulate slow detail fetches.
	movieGate map[int64]chan struct{}

	// favListCalls counts favorites-list requests; call ordinals present in
	// favListFail answer 500 instead, to simulate transient list failures.
	favListCalls int
	favListFail  map[int]bool

	// truncateReviewBody makes review creation succeed server-side but send
	// back a cut-off JSON body. reviewPostCalls counts creation attempts.
	truncateReviewBody bool
	reviewPostCalls    int
}

func newFakeBackend(movies ...Movie) *fakeBackend {
	return &fakeBackend{
		movies:       movies,
		reviews:      make(map[int64][]Review),
		stats:        make(map[int64]RatingStats),
		favorites:    make(map[int64]map[int64]bool),
		users:        make(map[string]User),
		nextReviewID: 100,
		movieGate:    make(map[int64]chan struct{}),
		favListFail:  make(map[int]bool),
	}
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	pathID := func(r *http.Request) int64 {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		return id
	}
	queryUserID := func(r *http.Request) int64 {
		id, _ := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
		return id
	}

	mux.HandleFunc("GET /api/movies/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		movies := append([]Movie(nil), b.movies...)
		b.mu.Unlock()
		writeJSON(w, movies)
	})

	mux.HandleFunc("GET /api/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		b.mu.Lock()
		gate := b.movieGate[id]
		b.mu.Unlock()
		if gate != nil {
			<-gate
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, m := range b.movies {
			if m.ID == id {
				writeJSON(w, m)
				return
			}
		}
		http.Error(w, `{"detail":"Movie not found"}`, http.StatusNotFound)
	})

	mux.HandleFunc("GET /api/movies/{id}/reviews", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		approvedOnly := r.URL.Query().Get("approved_only") != "false"
		b.mu.Lock()
		defer b.mu.Unlock()
		out := make([]Review, 0)
		for _, rev := range b.reviews[id] {
			if !approvedOnly || rev.Approved {
				out = append(out, rev)
			}
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("POST /api/movies/{id}/reviews", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		var req types.CreateReviewRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.reviewPostCalls++
		b.nextReviewID++
		rev := Review{
			ID:        b.nextReviewID,
			MovieID:   id,
			UserID:    queryUserID(r),
			Text:      req.Text,
			Rating:    req.Rating,
			CreatedAt: time.Now().UTC(),
			Approved:  false,
		}
		b.reviews[id] = append([]Review{rev}, b.reviews[id]...)
		if b.truncateReviewBody {
			// The write landed but the response body is cut off mid-object.
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":`))
			return
		}
		writeJSON(w, rev)
	})

	mux.HandleFunc("PUT /api/movies/reviews/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		for movieID, revs := range b.reviews {
			for i := range revs {
				if revs[i].ID == id {
					b.reviews[movieID][i].Approved = true
					writeJSON(w, types.StatusAck{Status: "approved"})
					return
				}
			}
		}
		http.Error(w, `{"detail":"Review not found"}`, http.StatusNotFound)
	})

	deleteReview := func(w http.ResponseWriter, r *http.Request, id int64) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for movieID, revs := range b.reviews {
			for i := range revs {
				if revs[i].ID == id {
					b.reviews[movieID] = append(revs[:i], revs[i+1:]...)
					writeJSON(w, types.StatusAck{Status: "deleted"})
					return
				}
			}
		}
		http.Error(w, `{"detail":"Review not found"}`, http.StatusNotFound)
	}

	mux.HandleFunc("GET /api/movies/{id}/rating-stats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.stats[pathID(r)])
	})

	mux.HandleFunc("POST /api/movies/{id}/ratings", func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r)
		var req types.SubmitRatingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		avg := float64(req.Value)
		b.stats[id] = RatingStats{Average: &avg, Count: b.stats[id].Count + 1}
		writeJSON(w, Rating{ID: 1, MovieID: id, UserID: queryUserID(r), Value: req.Value})
	})

	mux.HandleFunc("POST /api/movies/{id}/favorites", func(w http.ResponseWriter, r *http.Request) {
		id, userID := pathID(r), queryUserID(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.favorites[userID][id] {
			http.Error(w, `{"detail":"Already in favorites"}`, http.StatusBadRequest)
			return
		}
		if b.favorites[userID] == nil {
			b.favorites[userID] = make(map[int64]bool)
		}
		b.favorites[userID][id] = true
		writeJSON(w, types.StatusAck{Status: "added to favorites"})
	})

	deleteFavorite := func(w http.ResponseWriter, r *http.Request, id int64) {
		userID := queryUserID(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		if !b.favorites[userID][id] {
			http.Error(w, `{"detail":"Not in favorites"}`, http.StatusNotFound)
			return
		}
		delete(b.favorites[userID], id)
		writeJSON(w, types.StatusAck{Status: "removed from favorites"})
	}

	// "DELETE /api/movies/reviews/{id}" and "DELETE /api/movies/{id}/favorites"
	// are ambiguous to ServeMux (neither is more specific), so both are routed
	// through one subtree handler that dispatches on path shape.
	mux.HandleFunc("DELETE /api/movies/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/movies/"), "/"), "/")
		switch {
		case len(parts) == 2 && parts[0] == "reviews":
			id, _ := strconv.ParseInt(parts[1], 10, 64)
			deleteReview(w, r, id)
		case len(parts) == 2 && parts[1] == "favorites":
			id, _ := strconv.ParseInt(parts[0], 10, 64)
			deleteFavorite(w, r, id)
		default:
			http.NotFound(w, r)
		}
	})

	mux.HandleFunc("GET /api/movies/user/{id}/favorites", func(w http.ResponseWriter, r *http.Request) {
		userID := pathID(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.favListCalls++
		if b.favListFail[b.favListCalls] {
			http.Error(w, `{"detail":"temporarily unavailable"}`, http.StatusInternalServerError)
			return
		}
		out := make([]Movie, 0)
		for _, m := range b.movies {
			if b.favorites[userID][m.ID] {
				out = append(out, m)
			}
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		u, ok := b.users[req.Email]
		b.mu.Unlock()
		if !ok {
			http.Error(w, `{"detail":"Invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		writeJSON(w, u)
	})

	mux.HandleFunc("POST /api/users/register", func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		u := User{ID: int64(len(b.users) + 1), Username: req.Username, Email: req.Email}
		b.users[req.Email] = u
		writeJSON(w, u)
	})

	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		userID := queryUserID(r)
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, u := range b.users {
			if u.ID == userID {
				writeJSON(w, u)
				return
			}
		}
		http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
	})

	return mux
}

// newTestEngine wires an Engine against the fake backend with deterministic
// defaults: in-memory session store, inline executor, explicit config.
func newTestEngine(t *testing.T, b *fakeBackend, opts ...EngineOption) (*Engine, *memStore) {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	store := &memStore{}
	base := []EngineOption{
		WithEngineConfig(Config{ShowOwnPendingReviews: true}),
		WithSessionStore(store),
		WithExecutor(syncExecutor{}),
	}
	e, err := NewEngine(New(srv.URL), append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e, store
}

// retryingExecutor builds a real shard executor with fast backoff, for tests
// that exercise retry behavior instead of the inline syncExecutor.
func retryingExecutor() *shardqueue.ShardExecutor {
	return shardqueue.NewShardExecutor(shardqueue.Config{
		Shards:         2,
		QueueSize:      16,
		EnqueueTimeout: time.Second,
		MaxAttempts:    3,
		BaseBackoff:    time.Millisecond,
		MaxInterval:    5 * time.Millisecond,
	})
}

func ratingPtr(v int) *int { return &v }
