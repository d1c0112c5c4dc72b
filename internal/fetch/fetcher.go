// Package fetch performs the single bounded GET a check cycle issues per
// monitored page.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent mirrors what a plain browser sends; some sites serve
	// error pages to unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (compatible; pagewatch/1.0)"

	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 5 << 20 // 5 MiB cap, a page bigger than this is not a page
)

// Page is a successfully fetched document. ContentType is informational only;
// the body is treated as text regardless.
type Page struct {
	Body        string
	ContentType string
}

// Error is a typed fetch failure: transport error, timeout, or a terminal
// HTTP status. It never escapes as a panic; callers branch on it per target.
type Error struct {
	URL   string
	Cause string
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Cause)
}

// Options tunes the fetcher. Zero values pick the defaults above.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Fetcher retrieves one page per call. Implemented by HTTPFetcher; tests
// substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Fetch issues one GET and returns the body as text. Any transport error or
// terminal non-2xx/3xx status comes back as a *fetch.Error; there are no
// retries at this level.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Cause: err.Error()}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Cause: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, &Error{URL: url, Cause: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: url, Cause: "read body: " + err.Error()}
	}

	return &Page{
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
