package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher implements the Fetcher interface using the Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a synchronous Colly-based Fetcher. Responses
// outside the 2xx range are still parsed so the loop can report the reason;
// the same URL may be visited more than once within a run.
func NewCollyFetcher(logger *zap.Logger) *CollyFetcher {
	base := colly.NewCollector()
	base.ParseHTTPErrorResponse = true
	base.AllowURLRevisit = true
	base.DetectCharset = true
	base.WithTransport(&http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        16,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	})

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}
}

// Fetch retrieves one page via a cloned collector. Non-2xx responses come
// back as a *StatusError; transport failures as the underlying error.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string, headers map[string]string) (Result, error) {
	collector := f.baseCollector.Clone()

	start := time.Now()
	var result Result
	var fetchErr error

	collector.OnRequest(func(r *colly.Request) {
		for key, value := range headers {
			r.Headers.Set(key, value)
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		result = Result{
			URL:        rawURL,
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return Result{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return Result{}, fmt.Errorf("visit %s: %w", rawURL, err)
		}
	}
	if fetchErr != nil {
		return Result{}, fetchErr
	}

	f.logger.Debug("response received",
		zap.String("url", rawURL),
		zap.Int("status", result.StatusCode),
		zap.Int("bytes", len(result.Body)),
	)

	if result.StatusCode < http.StatusOK || result.StatusCode >= http.StatusMultipleChoices {
		return result, &StatusError{
			StatusCode: result.StatusCode,
			Status:     http.StatusText(result.StatusCode),
		}
	}
	return result, nil
}
