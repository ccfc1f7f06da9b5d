package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
)

// Fetcher retrieves raw feed documents
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TransportError is returned when a feed can't be retrieved over http.
// StatusCode is zero when the request failed before a response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrTooLarge is returned when a response body exceeds the configured limit
var ErrTooLarge = errors.New("feed document too large")

// acceptFeed asks for rss first with generic xml as fallback
const acceptFeed = "application/rss+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5"

// errPermanent stops retries for failures which won't change on the next attempt
var errPermanent = errors.New("permanent fetch failure")

// FetcherConfig defines http fetcher parameters. Zero values except Retries are replaced by defaults
type FetcherConfig struct {
	Timeout    time.Duration
	UserAgent  string
	Retries    int
	RetryDelay time.Duration
	MaxSize    int64
}

// HTTPFetcher fetches feed documents via http with retries on network errors and 5xx responses
type HTTPFetcher struct {
	client *http.Client
	cfg    FetcherConfig
}

// NewHTTPFetcher creates a new feed fetcher
func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "rsskit/1.0"
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 10 * 1024 * 1024
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg: cfg,
	}
}

// Fetch retrieves the document at url. Network errors and 5xx responses are retried
// with exponential backoff, other non-2xx responses fail immediately.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var lastErr error
	attempt := 0

	retrier := repeater.NewBackoff(f.cfg.Retries+1, f.cfg.RetryDelay, repeater.WithMaxDelay(10*f.cfg.RetryDelay))
	err := retrier.Do(ctx, func() error {
		attempt++
		data, retry, err := f.fetchOnce(ctx, url)
		if err == nil {
			body = data
			return nil
		}
		lastErr = err
		if !retry {
			return errPermanent
		}
		lgr.Printf("[DEBUG] fetch %s failed, attempt %d: %v", url, attempt, err)
		return err
	}, errPermanent)

	if err == nil {
		lgr.Printf("[DEBUG] fetched %s, %d bytes", url, len(body))
		return body, nil
	}
	if lastErr == nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return nil, lastErr
}

// fetchOnce makes a single request, reporting whether a failure is worth retrying
func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (data []byte, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, &TransportError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}

	// some hosts reject requests that don't look like a feed reader
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", acceptFeed)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode >= 500, &TransportError{URL: url, StatusCode: resp.StatusCode,
			Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxSize+1))
	if err != nil {
		return nil, ctx.Err() == nil, &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(data)) > f.cfg.MaxSize {
		return nil, false, &TransportError{URL: url, Err: fmt.Errorf("%w, limit %d bytes", ErrTooLarge, f.cfg.MaxSize)}
	}
	return data, false, nil
}
