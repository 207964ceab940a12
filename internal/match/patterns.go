package match

import (
	"regexp"
	"strings"
)

// Additional PII category names used as keys of the additionalPii map.
const (
	CategorySSN        = "ssn"
	CategoryCreditCard = "credit_card"
	CategoryIPAddress  = "ip_address"
	CategoryDate       = "date"
)

// maxExamplesPerCategory caps how many distinct examples are reported per
// additional PII category. The count signals exposure; an exhaustive list
// would just copy the page's sensitive content into the report.
const maxExamplesPerCategory = 5

// emailPattern matches email addresses in text.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// phonePatterns match phone numbers across common regional formats.
// Matching is format-loose on purpose: candidates are normalized to digits
// before comparison, so false positives here cost nothing.
var phonePatterns = []*regexp.Regexp{
	// US/Canada: (555) 123-4567, 555-123-4567, 555.123.4567
	regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),

	// International: +44 20 7123 4567, +81-3-1234-5678
	regexp.MustCompile(`\+\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{2,4}[-.\s]?\d{3,4}`),

	// Bare digit runs long enough to be a subscriber number
	regexp.MustCompile(`\d{10,11}`),
}

// sensitivePatterns maps additional PII categories to their detection
// patterns.
var sensitivePatterns = map[string]*regexp.Regexp{
	CategorySSN:        regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	CategoryCreditCard: regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
	CategoryIPAddress:  regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
	CategoryDate:       regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
}

// extractEmails returns all email-shaped tokens in the corpus.
func extractEmails(corpus string) []string {
	return emailPattern.FindAllString(corpus, -1)
}

// extractPhones returns all phone-shaped tokens in the corpus across every
// regional pattern. Tokens are returned as found, not normalized.
func extractPhones(corpus string) []string {
	var tokens []string
	for _, pattern := range phonePatterns {
		tokens = append(tokens, pattern.FindAllString(corpus, -1)...)
	}
	return tokens
}

// digitsOnly strips everything but ASCII digits.
func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ExtractAdditionalPII scans the corpus for generic sensitive patterns and
// returns up to maxExamplesPerCategory distinct examples per category.
// Categories with no matches are absent from the map.
func ExtractAdditionalPII(corpus string) map[string][]string {
	found := make(map[string][]string)

	for category, pattern := range sensitivePatterns {
		matches := pattern.FindAllString(corpus, -1)
		if len(matches) == 0 {
			continue
		}

		seen := make(map[string]bool, len(matches))
		examples := make([]string, 0, maxExamplesPerCategory)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			examples = append(examples, m)
			if len(examples) == maxExamplesPerCategory {
				break
			}
		}
		found[category] = examples
	}

	if len(found) == 0 {
		return nil
	}
	return found
}
