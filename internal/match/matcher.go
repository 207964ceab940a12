package match

import (
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
	"golang.org/x/text/cases"
)

// Partial-match confidences for attributes with fixed values. Name and
// address confidences are ratios computed from matched parts instead.
const (
	emailPartialConfidence = 0.7
	phonePartialConfidence = 0.8
)

// minTokenLength filters out short name tokens (initials, particles) that
// would match almost any page.
const minTokenLength = 2

// Matcher finds identity attributes inside a text corpus.
//
// The zero value is not usable; create instances with NewMatcher. A
// Matcher is stateless after construction and safe for concurrent use.
type Matcher struct {
	// folder performs Unicode case folding for case-insensitive
	// comparison. Folding handles cases simple lowercasing misses.
	folder cases.Caser
}

// NewMatcher creates a Matcher.
func NewMatcher() *Matcher {
	return &Matcher{folder: cases.Fold()}
}

// Result is the outcome of matching one profile against one corpus.
type Result struct {
	// Matched maps attribute names to their match records. Attributes
	// with no match are absent.
	Matched map[string]model.Match

	// AdditionalPII maps generic sensitive-pattern categories to example
	// values found in the corpus, independent of the profile.
	AdditionalPII map[string][]string
}

// Match runs every present profile attribute against the corpus and scans
// for additional sensitive patterns. The corpus should be plain text, as
// produced by ExtractText.
//
// Matching is deterministic: identical inputs always produce identical
// results.
func (m *Matcher) Match(profile model.Profile, corpus string) Result {
	folded := m.folder.String(corpus)

	matched := make(map[string]model.Match)
	for _, attr := range profile.Attributes() {
		value := profile.Get(attr)

		var rec model.Match
		var ok bool
		switch attr {
		case model.AttributeName:
			rec, ok = m.matchName(value, folded)
		case model.AttributeEmail:
			rec, ok = m.matchEmail(value, folded)
		case model.AttributePhone:
			rec, ok = m.matchPhone(value, folded)
		case model.AttributeAddress:
			rec, ok = m.matchAddress(value, folded)
		}
		if ok {
			matched[attr] = rec
		}
	}

	return Result{
		Matched:       matched,
		AdditionalPII: ExtractAdditionalPII(corpus),
	}
}

// matchName matches a full name exactly, falling back to per-token
// matching with a ratio confidence.
func (m *Matcher) matchName(name, folded string) (model.Match, bool) {
	foldedName := m.folder.String(name)
	if strings.Contains(folded, foldedName) {
		return model.Match{
			Value:      name,
			Confidence: 1.0,
			MatchType:  model.MatchExact,
			Context:    excerpt(folded, foldedName),
			FoundValue: foldedName,
		}, true
	}

	tokens := strings.Fields(foldedName)
	var total, hit int
	var matchedParts []string
	var first string
	for _, token := range tokens {
		if len(token) <= minTokenLength {
			continue
		}
		total++
		if strings.Contains(folded, token) {
			hit++
			matchedParts = append(matchedParts, token)
			if first == "" {
				first = token
			}
		}
	}
	if hit == 0 || total == 0 {
		return model.Match{}, false
	}

	return model.Match{
		Value:        name,
		Confidence:   float64(hit) / float64(total),
		MatchType:    model.MatchPartial,
		Context:      excerpt(folded, first),
		MatchedParts: matchedParts,
		FoundValue:   first,
	}, true
}

// matchEmail compares extracted email tokens for exact equality, falling
// back to local-part containment within another extracted email. Both
// checks operate on email-shaped tokens only; a bare local part in prose
// is no evidence that the address itself is exposed.
func (m *Matcher) matchEmail(email, folded string) (model.Match, bool) {
	foldedEmail := m.folder.String(email)
	tokens := extractEmails(folded)

	for _, token := range tokens {
		if token == foldedEmail {
			return model.Match{
				Value:      email,
				Confidence: 1.0,
				MatchType:  model.MatchExact,
				Context:    excerpt(folded, token),
				FoundValue: token,
			}, true
		}
	}

	localPart, _, found := strings.Cut(foldedEmail, "@")
	if !found || localPart == "" {
		return model.Match{}, false
	}
	for _, token := range tokens {
		if strings.Contains(token, localPart) {
			return model.Match{
				Value:      email,
				Confidence: emailPartialConfidence,
				MatchType:  model.MatchPartial,
				Context:    excerpt(folded, token),
				FoundValue: token,
			}, true
		}
	}

	return model.Match{}, false
}

// matchPhone compares digit sequences. Exact digit equality is an exact
// match; containment in either direction is partial, which covers numbers
// written with or without a country prefix.
func (m *Matcher) matchPhone(phone, folded string) (model.Match, bool) {
	wantDigits := digitsOnly(phone)
	if wantDigits == "" {
		return model.Match{}, false
	}

	var partial *model.Match
	for _, token := range extractPhones(folded) {
		gotDigits := digitsOnly(token)
		if gotDigits == "" {
			continue
		}
		if gotDigits == wantDigits {
			return model.Match{
				Value:      phone,
				Confidence: 1.0,
				MatchType:  model.MatchExact,
				Context:    excerpt(folded, token),
				FoundValue: token,
			}, true
		}
		if partial == nil &&
			(strings.Contains(gotDigits, wantDigits) || strings.Contains(wantDigits, gotDigits)) {
			partial = &model.Match{
				Value:      phone,
				Confidence: phonePartialConfidence,
				MatchType:  model.MatchPartial,
				Context:    excerpt(folded, token),
				FoundValue: token,
			}
		}
	}

	if partial != nil {
		return *partial, true
	}
	return model.Match{}, false
}

// matchAddress matches a full address exactly, falling back to component
// matching. Partial matches need at least two components present; a lone
// street number or city name is too weak a signal.
func (m *Matcher) matchAddress(address, folded string) (model.Match, bool) {
	foldedAddress := m.folder.String(address)
	if strings.Contains(folded, foldedAddress) {
		return model.Match{
			Value:      address,
			Confidence: 1.0,
			MatchType:  model.MatchExact,
			Context:    excerpt(folded, foldedAddress),
			FoundValue: foldedAddress,
		}, true
	}

	components := splitAddress(foldedAddress)
	var hit int
	var matchedParts []string
	var first string
	for _, comp := range components {
		if strings.Contains(folded, comp) {
			hit++
			matchedParts = append(matchedParts, comp)
			if first == "" {
				first = comp
			}
		}
	}
	if hit < 2 || len(components) == 0 {
		return model.Match{}, false
	}

	return model.Match{
		Value:        address,
		Confidence:   float64(hit) / float64(len(components)),
		MatchType:    model.MatchPartial,
		Context:      excerpt(folded, first),
		MatchedParts: matchedParts,
		FoundValue:   first,
	}, true
}

// splitAddress breaks an address into comparable components on commas and
// whitespace, dropping short fragments.
func splitAddress(address string) []string {
	fields := strings.FieldsFunc(address, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	components := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minTokenLength {
			components = append(components, f)
		}
	}
	return components
}
