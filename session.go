package client

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/kinovzor/kinovzor-client/internal/types"
)

// CurrentSession returns the engine-wide identity snapshot.
func (e *Engine) CurrentSession() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Login authenticates with email/password and installs the registered
// session. Failure leaves the current session untouched.
func (e *Engine) Login(ctx context.Context, email, password string) error {
	u, err := e.client.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	e.setSession(types.RegisteredSession(*u))
	return nil
}

// Register creates an account and signs in as it.
func (e *Engine) Register(ctx context.Context, email, password, username string) error {
	u, err := e.client.Register(ctx, RegisterRequest{Email: email, Password: password, Username: username})
	if err != nil {
		return err
	}
	e.setSession(types.RegisteredSession(*u))
	return nil
}

// LoginAsGuest installs the named but unprivileged guest identity. No network
// round trip is involved.
func (e *Engine) LoginAsGuest() {
	e.setSession(types.GuestSession())
}

// Logout clears the persisted session and resets to anonymous.
func (e *Engine) Logout() {
	if err := e.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("engine: failed to clear persisted session")
	}
	e.mu.Lock()
	e.session = types.AnonymousSession()
	e.favorites = make(map[int64]bool)
	e.mu.Unlock()
	e.notify(TopicSession)
	e.notify(TopicFavorites)
}

// RefreshProfile re-fetches the signed-in user's record, picking up
// server-side changes such as a granted moderator flag. No-op for guests and
// anonymous sessions.
func (e *Engine) RefreshProfile(ctx context.Context) error {
	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()
	if sess.Kind != types.IdentityRegistered {
		return nil
	}

	u, err := e.client.GetMe(ctx, sess.UserID())
	if err != nil {
		return err
	}
	e.setSession(types.RegisteredSession(*u))
	return nil
}

// setSession installs sess, persists it, resets identity-scoped caches, and
// emits TopicSession.
func (e *Engine) setSession(sess types.Session) {
	if err := e.store.Save(sess); err != nil {
		log.Warn().Err(err).Msg("engine: failed to persist session")
	}
	e.mu.Lock()
	e.session = sess
	e.favorites = make(map[int64]bool)
	e.mu.Unlock()
	e.notify(TopicSession)
	e.notify(TopicFavorites)
}
