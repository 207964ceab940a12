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

// googleBaseURL is the production search endpoint.
const googleBaseURL = "https://www.google.com"

// googleResultsPerPage is Google's default result page size, used to
// compute the start offset for pagination.
const googleResultsPerPage = 10

// Google scrapes Google's HTML result pages.
//
// Result links come wrapped as /url?q=<target> redirects; the parser
// unwraps them and skips Google's own navigation links.
type Google struct {
	engine
}

// NewGoogle creates a Google provider.
func NewGoogle(opts ...EngineOption) *Google {
	return &Google{engine: newEngine(googleBaseURL, opts...)}
}

// Name returns the registry name.
func (g *Google) Name() string { return "google" }

// Search runs the query across up to pages result pages.
func (g *Google) Search(ctx context.Context, query string, pages int) ([]model.Candidate, error) {
	rank := 0
	return g.searchPages(ctx, pages,
		func(page int) string {
			return fmt.Sprintf("%s/search?q=%s&start=%d",
				g.baseURL, url.QueryEscape(query), page*googleResultsPerPage)
		},
		func(body []byte) []model.Candidate {
			parsed := g.parse(body, &rank)
			return parsed
		})
}

// parse extracts candidates from one Google result page.
func (g *Google) parse(body []byte, rank *int) []model.Candidate {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []model.Candidate
	seen := make(map[string]bool)

	walkNodes(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		target := googleTarget(nodeAttr(n, "href"))
		if target == "" || seen[target] {
			return
		}
		seen[target] = true

		title := googleTitle(n)
		if title == "" {
			title = nodeText(n)
		}

		candidates = append(candidates, model.Candidate{
			URL:      target,
			Title:    title,
			Snippet:  googleSnippet(n),
			Provider: "google",
			Rank:     *rank,
		})
		*rank++
	})

	return candidates
}

// googleTarget unwraps a result href to the target URL, returning "" for
// non-result links.
func googleTarget(href string) string {
	// Wrapped form used on the plain HTML result page.
	if strings.HasPrefix(href, "/url?") {
		u, err := url.Parse(href)
		if err != nil {
			return ""
		}
		target := u.Query().Get("q")
		if target == "" {
			target = u.Query().Get("url")
		}
		if !strings.HasPrefix(target, "http") {
			return ""
		}
		if isGoogleHost(target) {
			return ""
		}
		return target
	}

	// Direct external links appear on some page variants.
	if strings.HasPrefix(href, "http") && !isGoogleHost(href) {
		return href
	}
	return ""
}

// isGoogleHost reports whether the URL points back at Google itself.
func isGoogleHost(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Host)
	return strings.Contains(host, "google.") || host == ""
}

// googleTitle returns the h3 heading nested inside a result anchor, if any.
func googleTitle(anchor *html.Node) string {
	var title string
	walkNodes(anchor, func(n *html.Node) {
		if title == "" && n.Type == html.ElementNode && n.Data == "h3" {
			title = nodeText(n)
		}
	})
	return title
}

// googleSnippet returns the snippet text near a result anchor. Google
// renders snippets as sibling blocks of the anchor's result container, so
// we take the text of the parent block minus the anchor's own text.
func googleSnippet(anchor *html.Node) string {
	container := anchor.Parent
	for i := 0; i < 3 && container != nil && container.Parent != nil; i++ {
		container = container.Parent
	}
	if container == nil {
		return ""
	}

	full := nodeText(container)
	own := nodeText(anchor)
	snippet := strings.TrimSpace(strings.Replace(full, own, "", 1))
	return snippet
}
