package client

// This file defines functional options that configure the Client and the
// Engine during construction. Keeping them in a standalone file makes it easy
// to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/text/language"
)

// Option configures a Client during construction in New.
// Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net bounding the total time spent on a single HTTP request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the default http.Client, mainly for tests that
// inject a fake RoundTripper.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true. Do not enable in production; dumps include
// headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// EngineOption configures an Engine during construction in NewEngine.
type EngineOption func(*Engine) error

// WithEngineConfig overrides the environment-derived engine policy flags.
func WithEngineConfig(cfg Config) EngineOption {
	return func(e *Engine) error {
		e.cfg = cfg
		return nil
	}
}

// WithSessionStore replaces the default file-backed session store.
func WithSessionStore(store SessionStore) EngineOption {
	return func(e *Engine) error {
		if store == nil {
			return fmt.Errorf("session store must not be nil")
		}
		e.store = store
		return nil
	}
}

// WithExecutor replaces the default shard executor, mainly for tests.
func WithExecutor(exec executor) EngineOption {
	return func(e *Engine) error {
		if exec == nil {
			return fmt.Errorf("executor must not be nil")
		}
		e.exec = exec
		return nil
	}
}

// WithLocale sets the collation locale used for title sorting, e.g. "ru" or
// "en-US". The default is Russian.
func WithLocale(tag string) EngineOption {
	return func(e *Engine) error {
		parsed, err := language.Parse(tag)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", tag, err)
		}
		e.locale = parsed
		return nil
	}
}
