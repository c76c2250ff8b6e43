package api

import (
	"errors"
	"net/http"
)

// errRT is a RoundTripper that always fails, for exercising network-error
// paths without a server.
type errRT struct{}

func (errRT) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}
