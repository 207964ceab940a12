package model

import (
	"net/url"
	"strings"
)

// Candidate is a single raw hit returned by a search provider before any
// content has been fetched or matched.
type Candidate struct {
	// URL is the candidate page URL as returned by the provider.
	URL string `json:"url"`

	// Title is the result title shown by the provider.
	Title string `json:"title"`

	// Snippet is the short excerpt shown by the provider, if any.
	Snippet string `json:"snippet,omitempty"`

	// Provider identifies which provider produced this candidate
	// (e.g. "google", "bing", "github").
	Provider string `json:"provider"`

	// Rank is the 1-based position within the provider's own result list.
	Rank int `json:"rank"`
}

// Key returns the deduplication key for the candidate: its normalized URL.
func (c Candidate) Key() string {
	return NormalizeURL(c.URL)
}

// Domain returns the host part of the candidate URL, lowercased.
func (c Candidate) Domain() string {
	u, err := url.Parse(c.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// NormalizeURL reduces a URL to scheme + host + path for deduplication.
// The query string and fragment are stripped, scheme and host are
// lowercased, and an empty path is normalized to "/".
//
// Design decision: We drop the query string entirely because search
// providers decorate result URLs with tracking parameters, and two
// candidates differing only in those parameters point at the same page.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// http://example.com and http://example.com/ are the same page.
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
