package types

// IdentityKind tags the three identity levels a session can carry.
type IdentityKind string

const (
	IdentityAnonymous  IdentityKind = "anonymous"
	IdentityGuest      IdentityKind = "guest"
	IdentityRegistered IdentityKind = "registered"
)

// Session is the client-side identity record. A Guest session never carries
// a user and never passes registered-user permission gates.
type Session struct {
	Kind IdentityKind `json:"kind"`
	User *User        `json:"user,omitempty"`
}

// AnonymousSession is the fail-closed default identity.
func AnonymousSession() Session {
	return Session{Kind: IdentityAnonymous}
}

// GuestSession is a named but unprivileged identity.
func GuestSession() Session {
	return Session{Kind: IdentityGuest}
}

// RegisteredSession wraps a backend user account.
func RegisteredSession(u User) Session {
	return Session{Kind: IdentityRegistered, User: &u}
}

// Valid reports whether the session is internally consistent. Persisted
// records that fail this check are treated as absent.
func (s Session) Valid() bool {
	switch s.Kind {
	case IdentityAnonymous, IdentityGuest:
		return s.User == nil
	case IdentityRegistered:
		return s.User != nil && s.User.ID > 0
	default:
		return false
	}
}

// CanMutate reports whether the identity may rate, review, or favorite.
// Guests are named but hold no mutation rights.
func (s Session) CanMutate() bool {
	return s.Kind == IdentityRegistered && s.User != nil && s.User.ID > 0
}

// IsModerator reports whether the identity may curate reviews.
func (s Session) IsModerator() bool {
	return s.CanMutate() && s.User.IsModerator
}

// UserID returns the registered user's id, or 0 for guests and anonymous.
func (s Session) UserID() int64 {
	if s.User == nil {
		return 0
	}
	return s.User.ID
}
