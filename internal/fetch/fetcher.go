package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/net/proxy"
)

// Default limits applied when an option is not set.
const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 2
	defaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// maxRedirects limits redirect chains to prevent loops.
	maxRedirects = 10
)

// Page is the result of a successful fetch.
type Page struct {
	// URL is the URL that was requested (before redirects).
	URL string

	// FinalURL is the URL after following redirects.
	FinalURL string

	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// ContentType is the Content-Type header of the response.
	ContentType string

	// Body is the response body, truncated to the configured size limit.
	Body []byte
}

// IsHTML reports whether the page body is HTML.
func (p *Page) IsHTML() bool {
	return strings.Contains(p.ContentType, "text/html") ||
		strings.Contains(p.ContentType, "application/xhtml")
}

// Fetcher retrieves candidate pages over HTTP with retry and bounded reads.
//
// Design decision: We classify every failure into ErrNotFound or
// ErrUnavailable instead of surfacing raw transport errors because the
// caller's decision is binary: a missing page and an unreachable page both
// degrade to snippet-only matching, they just stop retrying at different
// points. The underlying cause is preserved via error wrapping for logs.
type Fetcher struct {
	// client performs the HTTP requests. Shared across attempts so
	// connections are reused.
	client *http.Client

	// timeout is the per-attempt timeout.
	timeout time.Duration

	// maxRetries is the number of additional attempts after a transient
	// failure. Total attempts are maxRetries+1.
	maxRetries int

	// maxBodySize limits the response body size read per fetch.
	maxBodySize int64

	// userAgents is the pool rotated across requests. Empty means the Go
	// default user agent.
	userAgents []string

	// requestCount tracks total requests issued, for user-agent rotation.
	requestCount atomic.Int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRetries sets the number of additional attempts after a transient
// failure.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = n
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithUserAgents sets the user-agent pool rotated across requests.
func WithUserAgents(agents []string) Option {
	return func(f *Fetcher) {
		f.userAgents = agents
	}
}

// WithHTTPClient replaces the underlying HTTP client. Mainly for tests and
// for callers that already built a proxied client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a Fetcher with direct connections.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     defaultTimeout,
		maxRetries:  defaultMaxRetries,
		maxBodySize: defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = newHTTPClient(nil)
	}

	return f
}

// NewProxiedFetcher creates a Fetcher that routes all requests through a
// SOCKS5 proxy at the given "host:port" address.
//
// The constructor validates the address format but does not connect to the
// proxy; a dead proxy surfaces as ErrUnavailable on the first fetch.
func NewProxiedFetcher(proxyAddress string, opts ...Option) (*Fetcher, error) {
	if !isValidProxyAddress(proxyAddress) {
		return nil, ErrInvalidProxyAddress
	}

	// nil auth: a local SOCKS5 proxy typically requires none.
	dialer, err := proxy.SOCKS5("tcp", proxyAddress, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	f := &Fetcher{
		timeout:     defaultTimeout,
		maxRetries:  defaultMaxRetries,
		maxBodySize: defaultMaxBodySize,
		client:      newHTTPClient(dialer),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// newHTTPClient builds the shared HTTP client. A non-nil dialer routes all
// connections through it.
func newHTTPClient(dialer proxy.Dialer) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	if dialer != nil {
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}

	return &http.Client{
		Transport: transport,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// isValidProxyAddress checks if the address is in "host:port" format with a
// port in range.
func isValidProxyAddress(address string) bool {
	parts := strings.Split(address, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	portNum := 0
	for _, c := range parts[1] {
		if c < '0' || c > '9' {
			return false
		}
		portNum = portNum*10 + int(c-'0')
		if portNum > 65535 {
			return false
		}
	}

	return portNum >= 1
}

// Fetch retrieves the page at pageURL, retrying transient failures with
// exponential backoff. On success the body is truncated to the configured
// size limit.
//
// Errors satisfy errors.Is against ErrNotFound (no retry), ErrUnavailable
// (retries exhausted), or ErrInvalidURL. Context cancellation aborts the
// attempt loop immediately and returns the context error wrapped in
// ErrUnavailable.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, pageURL)
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			// 2^attempt seconds: 2s after the first failure, 4s after
			// the second.
			backoff := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
		}

		page, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return page, nil
		}
		lastErr = err

		// Terminal failures are never retried.
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
		}
	}

	return nil, lastErr
}

// fetchOnce performs a single attempt with its own timeout.
func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if ua := f.nextUserAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		// The page is gone; retrying cannot bring it back.
		return nil, fmt.Errorf("%w: status %d for %s", ErrNotFound, resp.StatusCode, pageURL)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		// Every other non-2xx is treated as transient. 403s and 429s in
		// particular are often rate limiting in disguise and clear on retry.
		return nil, fmt.Errorf("%w: status %d for %s", ErrUnavailable, resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrUnavailable, err)
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{
		URL:         pageURL,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// nextUserAgent returns the next user agent from the pool.
func (f *Fetcher) nextUserAgent() string {
	if len(f.userAgents) == 0 {
		return ""
	}
	n := f.requestCount.Add(1) - 1
	return f.userAgents[int(n)%len(f.userAgents)]
}
