package client

import (
	"sync"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kinovzor/kinovzor-client/internal/localstate"
	"github.com/kinovzor/kinovzor-client/internal/types"
)

// Config groups the engine's policy flags. Values are taken from environment
// variables with the prefix "KINOVZOR_" and can be overridden with
// WithEngineConfig.
type Config struct {
	// RequireReviewRating makes a star rating mandatory on review submission.
	RequireReviewRating bool `envconfig:"REQUIRE_REVIEW_RATING" default:"false"`

	// ShowOwnPendingReviews includes the signed-in user's unapproved reviews
	// in the detail view alongside approved ones.
	ShowOwnPendingReviews bool `envconfig:"SHOW_OWN_PENDING_REVIEWS" default:"true"`
}

// LoadConfig populates Config from environment variables (prefix KINOVZOR_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("KINOVZOR", &c)
}

// SessionStore persists the identity between launches. Load must fail closed
// to the anonymous session, never error.
type SessionStore interface {
	Load() types.Session
	Save(types.Session) error
	Clear() error
}

// noopStore is the fallback when no state directory is usable. The session
// then lives only for the process lifetime.
type noopStore struct{}

func (noopStore) Load() types.Session      { return types.AnonymousSession() }
func (noopStore) Save(types.Session) error { return nil }
func (noopStore) Clear() error             { return nil }

// Engine owns all client-side state: the persisted session, the catalog
// snapshot, the filter/sort view, the single active detail context, the
// favorites membership set, and per-movie review aggregates. All state sits
// behind one mutex; the suspension points are exactly the HTTP calls, which
// happen with the lock released.
type Engine struct {
	client *Client
	cfg    Config
	store  SessionStore
	exec   executor
	locale language.Tag

	mu         sync.Mutex
	session    types.Session
	catalog    []types.Movie
	genres     []string
	view       viewState
	detail     detailState
	epoch      uint64
	favorites  map[int64]bool
	aggregates map[int64]types.ReviewAggregate

	notifier   *notifier
	closedOnce uint32
}

// NewEngine constructs an Engine bound to c. Policy flags come from the
// environment unless overridden; the persisted session is restored
// immediately (fail-closed to anonymous).
func NewEngine(c *Client, opts ...EngineOption) (*Engine, error) {
	cfg, err := LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("engine: invalid KINOVZOR_ config, using defaults")
		cfg = Config{ShowOwnPendingReviews: true}
	}

	e := &Engine{
		client:     c,
		cfg:        cfg,
		locale:     language.Russian,
		view:       viewState{genre: GenreAll, sort: SortPopular},
		favorites:  make(map[int64]bool),
		aggregates: make(map[int64]types.ReviewAggregate),
		notifier:   newNotifier(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.store == nil {
		store, err := localstate.NewFileStore()
		if err != nil {
			log.Warn().Err(err).Msg("engine: state dir unavailable, session will not persist")
			e.store = noopStore{}
		} else {
			e.store = store
		}
	}
	if e.exec == nil {
		e.exec = newDefaultExecutor()
	}

	e.session = e.store.Load()
	return e, nil
}

// Subscribe registers a change listener. The returned cancel function removes
// it. Listeners run synchronously on the goroutine that caused the change,
// after the new state is readable.
func (e *Engine) Subscribe(fn func(Topic)) (cancel func()) {
	return e.notifier.subscribe(fn)
}

// Close stops the background executor. Safe to call multiple times.
func (e *Engine) Close() error {
	if !atomic.CompareAndSwapUint32(&e.closedOnce, 0, 1) {
		return nil
	}
	e.exec.Stop()
	return nil
}

// notify emits outside the engine lock. Callers must not hold e.mu.
func (e *Engine) notify(t Topic) {
	e.notifier.emit(t)
}

// collator builds the locale-aware comparer for title sorting. Collators are
// not safe for concurrent use, so a fresh one is built per view computation.
func (e *Engine) collator() *collate.Collator {
	return collate.New(e.locale)
}
