package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
	"golang.org/x/net/html"
)

// duckduckgoBaseURL is the no-JavaScript HTML endpoint, which serves
// stable markup meant for scraping-tolerant clients.
const duckduckgoBaseURL = "https://html.duckduckgo.com"

// duckduckgoResultsPerPage is the HTML endpoint's page size.
const duckduckgoResultsPerPage = 30

// DuckDuckGo scrapes the html.duckduckgo.com result pages. Results are
// a.result__a title links with a.result__snippet siblings; hrefs are
// wrapped in a /l/?uddg= redirect.
type DuckDuckGo struct {
	engine
}

// NewDuckDuckGo creates a DuckDuckGo provider.
func NewDuckDuckGo(opts ...EngineOption) *DuckDuckGo {
	return &DuckDuckGo{engine: newEngine(duckduckgoBaseURL, opts...)}
}

// Name returns the registry name.
func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search runs the query across up to pages result pages.
func (d *DuckDuckGo) Search(ctx context.Context, query string, pages int) ([]model.Candidate, error) {
	rank := 0
	return d.searchPages(ctx, pages,
		func(page int) string {
			if page == 0 {
				return fmt.Sprintf("%s/html/?q=%s", d.baseURL, url.QueryEscape(query))
			}
			return fmt.Sprintf("%s/html/?q=%s&s=%d",
				d.baseURL, url.QueryEscape(query), page*duckduckgoResultsPerPage)
		},
		func(body []byte) []model.Candidate {
			return d.parse(body, &rank)
		})
}

// parse extracts candidates from one DuckDuckGo result page.
func (d *DuckDuckGo) parse(body []byte, rank *int) []model.Candidate {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []model.Candidate
	walkNodes(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" || !hasClass(n, "result__a") {
			return
		}

		target := duckduckgoTarget(nodeAttr(n, "href"))
		if target == "" {
			return
		}

		candidates = append(candidates, model.Candidate{
			URL:      target,
			Title:    nodeText(n),
			Snippet:  duckduckgoSnippet(n),
			Provider: "duckduckgo",
			Rank:     *rank,
		})
		*rank++
	})

	return candidates
}

// duckduckgoTarget unwraps the /l/?uddg= redirect to the target URL.
func duckduckgoTarget(href string) string {
	if href == "" {
		return ""
	}

	// Redirect hrefs may be scheme-relative.
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if wrapped := u.Query().Get("uddg"); wrapped != "" {
		if strings.HasPrefix(wrapped, "http") {
			return wrapped
		}
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	return ""
}

// duckduckgoSnippet finds the result__snippet text within the same result
// block as the title anchor.
func duckduckgoSnippet(anchor *html.Node) string {
	container := anchor.Parent
	for i := 0; i < 3 && container != nil && container.Parent != nil; i++ {
		if hasClass(container, "result") || hasClass(container, "result__body") {
			break
		}
		container = container.Parent
	}
	if container == nil {
		return ""
	}

	var snippet string
	walkNodes(container, func(n *html.Node) {
		if snippet == "" && n.Type == html.ElementNode && hasClass(n, "result__snippet") {
			snippet = nodeText(n)
		}
	})
	return snippet
}
