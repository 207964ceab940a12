package query

import (
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
)

// Planner builds search queries from an identity profile.
//
// Query generation is deterministic: a fixed precedence of attribute
// combinations, each emitted only when all referenced attributes are
// present and non-empty. Multi-word values are quoted to request
// exact-phrase matching from the providers.
//
// Known gap, kept deliberately: a profile containing only a phone or only
// an address yields zero queries. Searching a bare phone number or street
// address produces near-useless results on general search engines, so
// those attributes only appear in combination with a name or email.
type Planner struct{}

// NewPlanner creates a query Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// combinations is the fixed precedence order of attribute combinations.
var combinations = [][]string{
	{model.AttributeName},
	{model.AttributeName, model.AttributePhone},
	{model.AttributeName, model.AttributeEmail},
	{model.AttributeName, model.AttributeAddress},
	{model.AttributeEmail},
	{model.AttributePhone, model.AttributeEmail},
}

// Plan returns the ordered, deduplicated query list for the profile.
func (p *Planner) Plan(profile model.Profile) []string {
	queries := make([]string, 0, len(combinations))
	seen := make(map[string]bool, len(combinations))

	for _, combo := range combinations {
		q, ok := buildQuery(profile, combo)
		if !ok || seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}

	return queries
}

// buildQuery joins the quoted values for one combination.
// It returns ok=false when any referenced attribute is missing.
func buildQuery(profile model.Profile, combo []string) (string, bool) {
	terms := make([]string, 0, len(combo))
	for _, attr := range combo {
		value := profile.Get(attr)
		if value == "" {
			return "", false
		}
		terms = append(terms, quote(value))
	}
	return strings.Join(terms, " "), true
}

// quote wraps a value in double quotes for exact-phrase matching.
// Single-token values are quoted too; engines treat a quoted single word
// the same as a bare one, and uniform quoting keeps queries predictable.
func quote(value string) string {
	return `"` + value + `"`
}
