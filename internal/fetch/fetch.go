// Package fetch performs single-page HTTP GETs for the downloader.
package fetch

import (
	"context"
	"time"
)

// Result is the outcome of one successful page fetch.
type Result struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, headers map[string]string) (Result, error)
}

// StatusError reports a response that came back outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

// Error returns the server-provided reason phrase.
func (e *StatusError) Error() string {
	return e.Status
}
