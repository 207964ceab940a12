package match

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// excerptWindow is the number of characters kept on each side of a match
// when building a context excerpt.
const excerptWindow = 50

// ExtractText converts HTML into a plain-text corpus for matching.
// Script and style contents are dropped and all whitespace runs are
// collapsed to single spaces.
//
// Design decision: We use golang.org/x/net/html rather than regex tag
// stripping because it correctly handles the malformed HTML common on the
// open web, and because a proper parse lets us drop script and style
// bodies instead of just their tags.
func ExtractText(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		// Fall back to the raw bytes; whitespace collapse still applies.
		return collapseWhitespace(string(body))
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return collapseWhitespace(sb.String())
}

// collapseWhitespace reduces all whitespace runs to single spaces and trims
// the ends.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// excerpt returns a symmetric window of text around the first occurrence
// of found within corpus, with ellipsis markers where the window truncates
// the corpus. Both arguments must share the same normalization.
func excerpt(corpus, found string) string {
	idx := strings.Index(corpus, found)
	if idx < 0 {
		return ""
	}

	start := idx - excerptWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(found) + excerptWindow
	if end > len(corpus) {
		end = len(corpus)
	}

	// The window counts bytes; nudge both edges forward to the next rune
	// boundary so multibyte text is never cut mid-rune.
	for start < idx && !utf8.RuneStart(corpus[start]) {
		start++
	}
	for end < len(corpus) && !utf8.RuneStart(corpus[end]) {
		end++
	}

	var sb strings.Builder
	if start > 0 {
		sb.WriteString("...")
	}
	sb.WriteString(corpus[start:end])
	if end < len(corpus) {
		sb.WriteString("...")
	}
	return sb.String()
}
