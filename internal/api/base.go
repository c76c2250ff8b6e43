package api

import (
	"io"
	"net/http"
)

// errorBody reads a short snippet of a non-success response body for error
// diagnostics. The body may already be partially consumed; errors are
// ignored because the snippet is best-effort.
func errorBody(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return string(snippet)
}
