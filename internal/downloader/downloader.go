// Package downloader drives the sequential fetch-archive loop: for each
// configured URL it optionally pauses, performs the GET, and streams the
// body into the run's ZIP archive. Individual fetch failures are logged and
// skipped; archive write failures abort the run.
package downloader

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ixtalo/pagezip/internal/archive"
	"github.com/ixtalo/pagezip/internal/config"
	"github.com/ixtalo/pagezip/internal/fetch"
	"github.com/ixtalo/pagezip/internal/metrics"
)

// Downloader owns one batch run. It is single-threaded on purpose: one URL
// is in flight at a time so the randomized delay actually paces the traffic.
type Downloader struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	delay   DelayPolicy
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// New assembles a Downloader from its collaborators. The logger is an
// explicit dependency so tests can inject a capturing sink.
func New(cfg *config.Config, fetcher fetch.Fetcher, delay DelayPolicy, m *metrics.Metrics, logger *zap.Logger) *Downloader {
	return &Downloader{
		cfg:     cfg,
		fetcher: fetcher,
		delay:   delay,
		metrics: m,
		logger:  logger,
	}
}

// Run executes the fetch-archive loop against the resolved target path.
// URLs are processed in configured order, never reordered or deduplicated.
// The archive is closed on every exit path, including write failures.
func (d *Downloader) Run(ctx context.Context, target string) (err error) {
	writer, err := archive.Create(target)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	d.logger.Info("starting batch",
		zap.Int("urls", len(d.cfg.URLs)),
		zap.String("archive", target),
	)

	var succeeded, failed int
	for _, rawURL := range d.cfg.URLs {
		if err := d.pause(ctx); err != nil {
			return err
		}

		d.logger.Info("HTTP GET", zap.String("url", rawURL))
		result, fetchErr := d.fetcher.Fetch(ctx, rawURL, d.cfg.Headers)
		if fetchErr != nil {
			d.logger.Error("fetch failed",
				zap.String("url", rawURL),
				zap.Error(fetchErr),
			)
			d.metrics.ObserveFailure()
			failed++
			continue
		}

		name, nameErr := archive.EntryName(rawURL)
		if nameErr != nil {
			d.logger.Error("cannot derive entry name",
				zap.String("url", rawURL),
				zap.Error(nameErr),
			)
			d.metrics.ObserveFailure()
			failed++
			continue
		}

		if writeErr := writer.Add(name, result.Body); writeErr != nil {
			return fmt.Errorf("archive %s: %w", name, writeErr)
		}
		d.metrics.ObserveSuccess(len(result.Body), result.Duration)
		succeeded++
		d.logger.Debug("entry written",
			zap.String("entry", name),
			zap.Int("bytes", len(result.Body)),
		)
	}

	d.logger.Info("batch finished",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed),
	)
	return nil
}

// pause blocks for the policy's next delay, if any. Context cancellation
// interrupts the wait and aborts the run.
func (d *Downloader) pause(ctx context.Context) error {
	delay := d.delay.NextDelay()
	if delay <= 0 {
		return nil
	}
	d.logger.Info("random sleep before request", zap.Duration("sleep", delay))

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("run canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
