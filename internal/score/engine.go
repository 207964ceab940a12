package score

import (
	"fmt"
	"strings"

	"github.com/exposurescan/exposurescan/internal/model"
)

// Base weights per matched attribute. A phone number scores highest: it is
// directly actionable for harassment and SIM-swap attacks. Additional PII
// is weighted once as a whole regardless of how many categories matched.
const (
	WeightName          = 20
	WeightEmail         = 30
	WeightPhone         = 40
	WeightAddress       = 35
	WeightAdditionalPII = 25
)

// Domain multipliers. Social platforms amplify exposure because content
// there is broadly indexed and tied to a persona; breach and dump sites
// amplify it further because presence there implies compromised data.
const (
	SocialMultiplier = 1.2
	BreachMultiplier = 1.5
)

// attributeWeights maps attribute names to their base weights.
var attributeWeights = map[string]int{
	model.AttributeName:    WeightName,
	model.AttributeEmail:   WeightEmail,
	model.AttributePhone:   WeightPhone,
	model.AttributeAddress: WeightAddress,
}

// Engine computes privacy scores for match outcomes.
//
// The Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	// socialTokens are host substrings that mark social platforms.
	socialTokens []string

	// breachTokens are host substrings that mark breach/dump sites.
	breachTokens []string
}

// NewEngine creates an Engine with the given domain token lists.
func NewEngine(socialTokens, breachTokens []string) *Engine {
	return &Engine{
		socialTokens: socialTokens,
		breachTokens: breachTokens,
	}
}

// Score computes the privacy score for one candidate's match outcome.
// domain is the candidate's lowercased host, used for multiplier lookup.
// The result is always in [0,100].
func (e *Engine) Score(matched map[string]model.Match, additionalPII map[string][]string, domain string) int {
	var raw float64
	for attr, rec := range matched {
		if weight, ok := attributeWeights[attr]; ok {
			raw += float64(weight) * rec.Confidence
		}
	}
	if len(additionalPII) > 0 {
		raw += WeightAdditionalPII
	}

	raw *= e.multiplier(domain)

	// Clamp and truncate.
	if raw > 100 {
		raw = 100
	}
	if raw < 0 {
		raw = 0
	}
	return int(raw)
}

// multiplier returns the domain multiplier for a host. Breach sites
// dominate when a host would qualify for both.
func (e *Engine) multiplier(domain string) float64 {
	for _, token := range e.breachTokens {
		if strings.Contains(domain, token) {
			return BreachMultiplier
		}
	}
	for _, token := range e.socialTokens {
		if strings.Contains(domain, token) {
			return SocialMultiplier
		}
	}
	return 1.0
}

// Assess derives the per-result risk notes and recommendations from a
// match outcome and its tier. Both lists are deterministic: attribute
// order follows model.KnownAttributes.
func Assess(matched map[string]model.Match, additionalPII map[string][]string, tier model.RiskTier) (risks, recommendations []string) {
	for _, attr := range model.KnownAttributes {
		if _, ok := matched[attr]; !ok {
			continue
		}
		switch attr {
		case model.AttributeName:
			risks = append(risks, "Name publicly visible on this page")
		case model.AttributeEmail:
			risks = append(risks, "Email address exposed, usable for phishing and spam")
			recommendations = append(recommendations, "Request removal of your email address from this page or use an alias going forward")
		case model.AttributePhone:
			risks = append(risks, "Phone number exposed, usable for harassment or SIM-swap attacks")
			recommendations = append(recommendations, "Request removal of your phone number from this page")
		case model.AttributeAddress:
			risks = append(risks, "Physical address exposed, a direct personal safety concern")
			recommendations = append(recommendations, "Request removal of your address from this page immediately")
		}
	}

	for _, category := range []string{"ssn", "credit_card", "ip_address", "date"} {
		if n := len(additionalPII[category]); n > 0 {
			risks = append(risks, fmt.Sprintf("Page contains %d %s-like value(s) alongside your information", n, category))
		}
	}

	if tier == model.TierHigh {
		recommendations = append(recommendations, "Treat this exposure as urgent: contact the site operator and request takedown")
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Monitor this page for changes")
	}

	return risks, recommendations
}
