package match

import (
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
)

// Fixed confidences for snippet-only matches. A provider snippet is a
// trusted quote of the page but proves less than fetching the page did,
// so confidences sit below 1.0 even for verbatim hits.
const (
	snippetNameConfidence  = 0.8
	snippetEmailConfidence = 0.9
	snippetPhoneConfidence = 0.9
)

// SnippetScoreCap bounds the privacy score of snippet-only results.
// Without page content the evidence never justifies a top-tier score.
const SnippetScoreCap = 70

// MatchSnippet matches the profile against a candidate's title and
// snippet. Used when the page itself could not be fetched. Only name,
// email, and phone are considered; addresses are too fragmented in
// snippets to match reliably.
//
// All records carry matchType "snippet" so report readers can tell
// reduced-provenance matches from full-content ones.
func (m *Matcher) MatchSnippet(profile model.Profile, title, snippet string) Result {
	folded := m.folder.String(collapseWhitespace(title + " " + snippet))

	matched := make(map[string]model.Match)

	if name := profile.Get(model.AttributeName); name != "" {
		foldedName := m.folder.String(name)
		if strings.Contains(folded, foldedName) {
			matched[model.AttributeName] = model.Match{
				Value:      name,
				Confidence: snippetNameConfidence,
				MatchType:  model.MatchSnippet,
				Context:    excerpt(folded, foldedName),
				FoundValue: foldedName,
			}
		}
	}

	if email := profile.Get(model.AttributeEmail); email != "" {
		foldedEmail := m.folder.String(email)
		if strings.Contains(folded, foldedEmail) {
			matched[model.AttributeEmail] = model.Match{
				Value:      email,
				Confidence: snippetEmailConfidence,
				MatchType:  model.MatchSnippet,
				Context:    excerpt(folded, foldedEmail),
				FoundValue: foldedEmail,
			}
		}
	}

	if phone := profile.Get(model.AttributePhone); phone != "" {
		wantDigits := digitsOnly(phone)
		if wantDigits != "" {
			for _, token := range extractPhones(folded) {
				if digitsOnly(token) == wantDigits {
					matched[model.AttributePhone] = model.Match{
						Value:      phone,
						Confidence: snippetPhoneConfidence,
						MatchType:  model.MatchSnippet,
						Context:    excerpt(folded, token),
						FoundValue: token,
					}
					break
				}
			}
		}
	}

	return Result{Matched: matched}
}
