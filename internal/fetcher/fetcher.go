// Package fetcher retrieves product pages over plain HTTP. The target sites
// are server-rendered, so a regular client with polite pacing and retries is
// enough.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pickledex/paddle-scraper/internal/document"
	"github.com/pickledex/paddle-scraper/internal/ratelimit"
)

// defaultUserAgents is rotated across requests when the config supplies none.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

// Options configures a Fetcher. Zero values fall back to sensible defaults.
type Options struct {
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration
	UserAgents []string
}

// recorder is the optional feedback side of a limiter. Adaptive limiters use
// it to speed up on sustained success and back off on throttling.
type recorder interface {
	RecordSuccess()
	RecordError()
}

// Fetcher wraps an HTTP client with rate limiting, user-agent rotation, and
// bounded retries. Fetch outcomes are reported back to the limiter when it
// accepts feedback.
type Fetcher struct {
	client     *http.Client
	limiter    ratelimit.Limiter
	logger     *slog.Logger
	userAgents []string
	maxRetries int
	retryDelay time.Duration
	requests   atomic.Int64
}

func New(limiter ratelimit.Limiter, logger *slog.Logger, opts Options) *Fetcher {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 5 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = defaultUserAgents
	}

	return &Fetcher{
		client:     &http.Client{Timeout: opts.Timeout},
		limiter:    limiter,
		logger:     logger.With("component", "fetcher"),
		userAgents: opts.UserAgents,
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
	}
}

// Fetch retrieves and parses one page. Transport errors, 5xx, and 429
// responses are retried with a fixed delay; other non-200 statuses fail
// immediately.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*document.Document, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		doc, retryable, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			f.recordSuccess()
			return doc, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		// transport failures and throttling feed the limiter's backoff
		f.recordError()

		f.logger.Warn("fetch attempt failed",
			"url", pageURL,
			"attempt", attempt,
			"error", err,
		)

		if attempt < f.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryDelay):
			}
		}
	}

	return nil, fmt.Errorf("fetch %s after %d attempts: %w", pageURL, f.maxRetries, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (*document.Document, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.nextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	default:
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	doc, err := document.New(pageURL, resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("parse html: %w", err)
	}
	return doc, false, nil
}

func (f *Fetcher) recordSuccess() {
	if r, ok := f.limiter.(recorder); ok {
		r.RecordSuccess()
	}
}

func (f *Fetcher) recordError() {
	if r, ok := f.limiter.(recorder); ok {
		r.RecordError()
	}
}

func (f *Fetcher) nextUserAgent() string {
	n := f.requests.Add(1) - 1
	return f.userAgents[int(n)%len(f.userAgents)]
}
