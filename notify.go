package client

import "sync"

// Topic identifies a region of engine state that changed. Renderers subscribe
// and re-read the relevant snapshot accessors when a topic fires.
type Topic int

const (
	TopicSession Topic = iota
	TopicCatalog
	TopicView
	TopicDetail
	TopicFavorites
)

// String returns a human-readable topic name for logs.
func (t Topic) String() string {
	switch t {
	case TopicSession:
		return "session"
	case TopicCatalog:
		return "catalog"
	case TopicView:
		return "view"
	case TopicDetail:
		return "detail"
	case TopicFavorites:
		return "favorites"
	default:
		return "unknown"
	}
}

// notifier fans a topic out to every subscriber. Emissions are synchronous
// and happen outside the engine lock, after the state change is visible.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Topic)
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]func(Topic))}
}

func (n *notifier) subscribe(fn func(Topic)) (cancel func()) {
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *notifier) emit(t Topic) {
	n.mu.Lock()
	fns := make([]func(Topic), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
}
