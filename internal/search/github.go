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

// githubBaseURL is the public GitHub REST API endpoint.
const githubBaseURL = "https://api.github.com"

// githubPerPage bounds how many items one platform query returns.
// Unauthenticated API quota is tight, so we keep requests small.
const githubPerPage = 10

// GitHub queries GitHub's user search API. Exposed profiles and
// commit-email leaks make GitHub a common identity exposure surface.
//
// Unlike the engine providers this talks JSON, so it does not embed the
// scraping engine; the API paginates server-side and one page is enough
// at our per-page size.
type GitHub struct {
	client  *http.Client
	baseURL string
}

// GitHubOption configures a GitHub provider.
type GitHubOption func(*GitHub)

// WithGitHubHTTPClient replaces the HTTP client.
func WithGitHubHTTPClient(client *http.Client) GitHubOption {
	return func(g *GitHub) {
		g.client = client
	}
}

// WithGitHubBaseURL overrides the API base URL. Mainly for tests.
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(g *GitHub) {
		g.baseURL = baseURL
	}
}

// NewGitHub creates a GitHub provider.
func NewGitHub(opts ...GitHubOption) *GitHub {
	g := &GitHub{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: githubBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the registry name.
func (g *GitHub) Name() string { return "github" }

// githubSearchResponse is the subset of the user search response we read.
type githubSearchResponse struct {
	Items []struct {
		Login   string `json:"login"`
		HTMLURL string `json:"html_url"`
		Type    string `json:"type"`
	} `json:"items"`
}

// Search queries the user search API. The pages parameter is ignored; one
// request returns everything we keep.
func (g *GitHub) Search(ctx context.Context, query string, _ int) ([]model.Candidate, error) {
	endpoint := fmt.Sprintf("%s/search/users?q=%s&per_page=%d",
		g.baseURL, url.QueryEscape(query), githubPerPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequest, err)
	}
	defer resp.Body.Close()

	// GitHub signals quota exhaustion with 403 or 429.
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderRequest, resp.StatusCode)
	}

	var parsed githubSearchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxEngineBodySize)).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrProviderRequest, err)
	}

	candidates := make([]model.Candidate, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		if item.HTMLURL == "" {
			continue
		}
		candidates = append(candidates, model.Candidate{
			URL:      item.HTMLURL,
			Title:    item.Login,
			Snippet:  fmt.Sprintf("GitHub %s profile matching the query", item.Type),
			Provider: "github",
			Rank:     i,
		})
	}
	return candidates, nil
}
