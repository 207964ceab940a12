package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/exposurescan/exposurescan/internal/model"
	"golang.org/x/net/html"
)

// Engine paging defaults, used when no option overrides them.
const (
	defaultPageDelay        = 2 * time.Second
	defaultRateLimitBackoff = 5 * time.Second
	defaultRetryCap         = 3
	defaultRequestTimeout   = 30 * time.Second

	// maxEngineBodySize caps result-page reads. Engine result pages are
	// small; anything larger is not a result page.
	maxEngineBodySize = 2 * 1024 * 1024
)

// engine is the shared scraping machinery embedded by the HTML engine
// providers. It handles request dispatch, user-agent rotation, inter-page
// delays, and rate-limit backoff; the embedding provider supplies the URL
// construction and result parsing.
type engine struct {
	client           *http.Client
	baseURL          string
	userAgents       []string
	pageDelay        time.Duration
	rateLimitBackoff time.Duration
	retryCap         int
	requestCount     atomic.Int64
}

// EngineOption configures an HTML engine provider.
type EngineOption func(*engine)

// WithHTTPClient replaces the engine's HTTP client. Useful for routing
// through a proxy or for tests.
func WithHTTPClient(client *http.Client) EngineOption {
	return func(e *engine) {
		e.client = client
	}
}

// WithBaseURL overrides the engine's base URL. Mainly for tests.
func WithBaseURL(baseURL string) EngineOption {
	return func(e *engine) {
		e.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithUserAgents sets the user-agent pool rotated across requests.
func WithUserAgents(agents []string) EngineOption {
	return func(e *engine) {
		e.userAgents = agents
	}
}

// WithPageDelay sets the fixed delay between result pages.
func WithPageDelay(d time.Duration) EngineOption {
	return func(e *engine) {
		e.pageDelay = d
	}
}

// WithRateLimitBackoff sets the base backoff after a rate-limit signal.
func WithRateLimitBackoff(d time.Duration) EngineOption {
	return func(e *engine) {
		e.rateLimitBackoff = d
	}
}

// WithRetryCap sets the maximum rate-limit retries per page.
func WithRetryCap(n int) EngineOption {
	return func(e *engine) {
		e.retryCap = n
	}
}

// newEngine builds an engine with defaults, then applies options.
func newEngine(baseURL string, opts ...EngineOption) engine {
	e := engine{
		client:           &http.Client{Timeout: defaultRequestTimeout},
		baseURL:          baseURL,
		pageDelay:        defaultPageDelay,
		rateLimitBackoff: defaultRateLimitBackoff,
		retryCap:         defaultRetryCap,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// get fetches one URL and classifies rate limiting. Engines signal rate
// limits with 429 or with 503 challenge pages.
func (e *engine) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}

	if ua := e.nextUserAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrProviderRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEngineBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	return body, nil
}

// getWithBackoff fetches a page, retrying rate-limit signals with
// exponential backoff up to the retry cap.
func (e *engine) getWithBackoff(ctx context.Context, pageURL string) ([]byte, error) {
	backoff := e.rateLimitBackoff

	var lastErr error
	for attempt := 0; attempt <= e.retryCap; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		body, err := e.get(ctx, pageURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !errors.Is(err, ErrRateLimited) {
			return nil, err
		}
	}
	return nil, lastErr
}

// searchPages drives the page loop shared by all engine providers.
// buildURL maps a zero-based page index to a request URL; parse extracts
// candidates from one result page.
//
// A page abandoned after exhausted rate-limit retries (or any later-page
// failure) keeps the partial results gathered so far. A first-page
// failure returns the error so the aggregator can log it.
func (e *engine) searchPages(ctx context.Context, pages int, buildURL func(page int) string, parse func(body []byte) []model.Candidate) ([]model.Candidate, error) {
	var candidates []model.Candidate

	for page := 0; page < pages; page++ {
		if page > 0 && e.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return candidates, nil
			case <-time.After(e.pageDelay):
			}
		}

		body, err := e.getWithBackoff(ctx, buildURL(page))
		if err != nil {
			if page == 0 {
				return nil, err
			}
			return candidates, nil
		}

		parsed := parse(body)
		if len(parsed) == 0 {
			// No more results; stop paging early.
			return candidates, nil
		}
		candidates = append(candidates, parsed...)
	}

	return candidates, nil
}

// nextUserAgent returns the next user agent from the pool.
func (e *engine) nextUserAgent() string {
	if len(e.userAgents) == 0 {
		return ""
	}
	n := e.requestCount.Add(1) - 1
	return e.userAgents[int(n)%len(e.userAgents)]
}

// HTML traversal helpers shared by the engine parsers.

// walkNodes calls fn for every node in the tree rooted at n.
func walkNodes(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, fn)
	}
}

// nodeAttr returns the value of the named attribute, or "".
func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClass reports whether the node's class attribute contains the given
// class name.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(nodeAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// nodeText returns the concatenated text content of the node's subtree
// with whitespace collapsed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	walkNodes(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
			sb.WriteByte(' ')
		}
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
