package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/model"
)

const maxFeedSize = 10 << 20

// Options configures a Fetcher.
type Options struct {
	Timeout time.Duration // per request, default 10s
	Retries uint64        // extra attempts on 5xx and 429
	Backoff time.Duration // first retry delay, default 500ms
	Client  *http.Client  // overrides Timeout when set
	Logger  logger.Logger
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	client  *http.Client
	retries uint64
	backoff time.Duration
	log     logger.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Fetcher{
		client:  opts.Client,
		retries: opts.Retries,
		backoff: opts.Backoff,
		log:     opts.Logger,
	}
}

// Fetch retrieves feedURL and returns its items as entries.
// Transport failures are returned as *NetworkError, documents that are
// not feeds as ErrNotAFeed.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]model.Entry, error) {
	var body []byte
	start := time.Now()

	b := retry.WithMaxRetries(f.retries, retry.NewFibonacci(f.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		data, err := f.get(ctx, feedURL)
		var se statusError
		if errors.As(err, &se) && (se.code >= 500 || se.code == http.StatusTooManyRequests) {
			f.log.Warn("feed fetch failed, retrying",
				logger.String("url", feedURL), logger.Int("status", se.code))
			return retry.RetryableError(err)
		}
		body = data
		return err
	})
	if err != nil {
		return nil, &NetworkError{URL: feedURL, Err: err}
	}

	entries, err := Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", feedURL, err)
	}

	f.log.Debug("feed fetched", logger.String("url", feedURL), logger.Int("entries", len(entries)),
		logger.Duration("elapsed", time.Since(start)))
	return entries, nil
}

func (f *Fetcher) get(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "readme/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError{code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
