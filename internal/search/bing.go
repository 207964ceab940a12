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

// bingBaseURL is the production search endpoint.
const bingBaseURL = "https://www.bing.com"

// bingResultsPerPage is Bing's default page size; the first parameter is
// 1-based.
const bingResultsPerPage = 10

// Bing scrapes Bing's HTML result pages. Bing marks organic results with
// li.b_algo blocks containing an h2 > a title link and a p snippet, which
// makes it the most stable of the scraped engines.
type Bing struct {
	engine
}

// NewBing creates a Bing provider.
func NewBing(opts ...EngineOption) *Bing {
	return &Bing{engine: newEngine(bingBaseURL, opts...)}
}

// Name returns the registry name.
func (b *Bing) Name() string { return "bing" }

// Search runs the query across up to pages result pages.
func (b *Bing) Search(ctx context.Context, query string, pages int) ([]model.Candidate, error) {
	rank := 0
	return b.searchPages(ctx, pages,
		func(page int) string {
			return fmt.Sprintf("%s/search?q=%s&first=%d",
				b.baseURL, url.QueryEscape(query), page*bingResultsPerPage+1)
		},
		func(body []byte) []model.Candidate {
			return b.parse(body, &rank)
		})
}

// parse extracts candidates from one Bing result page.
func (b *Bing) parse(body []byte, rank *int) []model.Candidate {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []model.Candidate
	walkNodes(doc, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "li" || !hasClass(n, "b_algo") {
			return
		}

		target, title := bingTitleLink(n)
		if target == "" || !strings.HasPrefix(target, "http") {
			return
		}

		candidates = append(candidates, model.Candidate{
			URL:      target,
			Title:    title,
			Snippet:  bingSnippet(n),
			Provider: "bing",
			Rank:     *rank,
		})
		*rank++
	})

	return candidates
}

// bingTitleLink returns the href and text of the h2 > a title link inside
// a result block.
func bingTitleLink(result *html.Node) (href, title string) {
	walkNodes(result, func(n *html.Node) {
		if href != "" || n.Type != html.ElementNode || n.Data != "h2" {
			return
		}
		walkNodes(n, func(a *html.Node) {
			if href == "" && a.Type == html.ElementNode && a.Data == "a" {
				href = nodeAttr(a, "href")
				title = nodeText(a)
			}
		})
	})
	return href, title
}

// bingSnippet returns the first paragraph text inside a result block.
func bingSnippet(result *html.Node) string {
	var snippet string
	walkNodes(result, func(n *html.Node) {
		if snippet == "" && n.Type == html.ElementNode && n.Data == "p" {
			snippet = nodeText(n)
		}
	})
	return snippet
}
