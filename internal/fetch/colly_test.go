// Package fetch includes tests for the Colly-based page fetcher.
package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestFetchSuccess retrieves a 200 body and forwards the custom headers.
func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	var gotUA atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer server.Close()

	fetcher := NewCollyFetcher(zap.NewNop())
	result, err := fetcher.Fetch(context.Background(), server.URL+"/page1.html", map[string]string{
		"User-Agent": "pagezip-test",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Equal(t, "<html>hello</html>", string(result.Body))
	require.Equal(t, "pagezip-test", gotUA.Load())
	require.Positive(t, result.Duration)
}

// TestFetchNotFound surfaces non-2xx responses as StatusError with the
// server-provided reason.
func TestFetchNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone fishing", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewCollyFetcher(zap.NewNop())
	result, err := fetcher.Fetch(context.Background(), server.URL+"/missing.html", map[string]string{"X-Test": "1"})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	require.Equal(t, "Not Found", statusErr.Status)
	require.Equal(t, http.StatusNotFound, result.StatusCode)
}

// TestFetchTransportFailure returns the underlying error when the server is
// unreachable.
func TestFetchTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // immediately, so the port refuses connections

	fetcher := NewCollyFetcher(zap.NewNop())
	_, err := fetcher.Fetch(context.Background(), server.URL, map[string]string{"X-Test": "1"})
	require.Error(t, err)

	var statusErr *StatusError
	require.False(t, errors.As(err, &statusErr))
}

// TestFetchSameURLTwice confirms revisits hit the server again.
func TestFetchSameURLTwice(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	fetcher := NewCollyFetcher(zap.NewNop())
	for i := 0; i < 2; i++ {
		_, err := fetcher.Fetch(context.Background(), server.URL+"/same.html", map[string]string{"X-Test": "1"})
		require.NoError(t, err)
	}
	require.EqualValues(t, 2, hits.Load())
}

// TestFetchCanceledContext aborts a pending request.
func TestFetchCanceledContext(t *testing.T) {
	t.Parallel()

	blocker := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-blocker
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()
	defer close(blocker)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewCollyFetcher(zap.NewNop())
	_, err := fetcher.Fetch(ctx, server.URL, map[string]string{"X-Test": "1"})
	require.ErrorIs(t, err, context.Canceled)
}
