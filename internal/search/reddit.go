package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/exposurescan/exposurescan/internal/model"
)

// redditBaseURL is the public Reddit endpoint. Appending .json to a
// search path returns the listing as JSON without authentication.
const redditBaseURL = "https://www.reddit.com"

// redditLimit bounds how many posts one platform query returns.
const redditLimit = 10

// Reddit queries Reddit's public search listing. Forum posts routinely
// quote names, emails, and phone numbers, making Reddit a high-signal
// exposure surface.
type Reddit struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// RedditOption configures a Reddit provider.
type RedditOption func(*Reddit)

// WithRedditHTTPClient replaces the HTTP client.
func WithRedditHTTPClient(client *http.Client) RedditOption {
	return func(r *Reddit) {
		r.client = client
	}
}

// WithRedditBaseURL overrides the base URL. Mainly for tests.
func WithRedditBaseURL(baseURL string) RedditOption {
	return func(r *Reddit) {
		r.baseURL = baseURL
	}
}

// WithRedditUserAgent sets the User-Agent header. Reddit throttles the
// default Go user agent aggressively.
func WithRedditUserAgent(ua string) RedditOption {
	return func(r *Reddit) {
		r.userAgent = ua
	}
}

// NewReddit creates a Reddit provider.
func NewReddit(opts ...RedditOption) *Reddit {
	r := &Reddit{
		client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   redditBaseURL,
		userAgent: "exposurescan/1.0",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry name.
func (r *Reddit) Name() string { return "reddit" }

// redditListing is the subset of the search listing response we read.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Permalink string `json:"permalink"`
				Selftext  string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search queries the public search listing. The pages parameter is
// ignored; one request returns everything we keep.
func (r *Reddit) Search(ctx context.Context, query string, _ int) ([]model.Candidate, error) {
	endpoint := fmt.Sprintf("%s/search.json?q=%s&limit=%d",
		r.baseURL, url.QueryEscape(query), redditLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderRequest, resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxEngineBodySize)).Decode(&listing); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrProviderRequest, err)
	}

	candidates := make([]model.Candidate, 0, len(listing.Data.Children))
	for i, child := range listing.Data.Children {
		if child.Data.Permalink == "" {
			continue
		}
		snippet := child.Data.Selftext
		if len(snippet) > 300 {
			snippet = snippet[:300]
		}
		candidates = append(candidates, model.Candidate{
			URL:      r.baseURL + child.Data.Permalink,
			Title:    child.Data.Title,
			Snippet:  snippet,
			Provider: "reddit",
			Rank:     i,
		})
	}
	return candidates, nil
}
