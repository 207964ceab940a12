package model

import "time"

// DetailedResult is a fully assessed candidate: the raw search hit merged
// with the identity matches found on the page, the privacy score, and the
// per-result risk assessment.
type DetailedResult struct {
	Candidate

	// MatchedInfo maps attribute names to their match records.
	// Only attributes that actually matched appear here.
	MatchedInfo map[string]Match `json:"matchedInfo"`

	// AdditionalPII maps generic sensitive-pattern categories (ssn,
	// credit_card, ip_address, date) to example values found on the page.
	// It is a side channel independent of the identity matches and never
	// contributes to match confidence. At most 5 examples per category.
	AdditionalPII map[string][]string `json:"additionalPii,omitempty"`

	// PrivacyScore is the 0-100 exposure severity estimate for this result.
	PrivacyScore int `json:"privacyScore"`

	// RiskTier is the coarse bucket derived from PrivacyScore.
	RiskTier RiskTier `json:"riskTier"`

	// Risks lists human-readable risk statements for this result.
	Risks []string `json:"risks,omitempty"`

	// Recommendations lists per-result remediation advice.
	Recommendations []string `json:"recommendations,omitempty"`

	// ExtractedAt is when the page content was analyzed.
	ExtractedAt time.Time `json:"extractedAt"`
}

// MatchedAttributes returns the identity attribute names that matched,
// in the fixed KnownAttributes order.
func (r *DetailedResult) MatchedAttributes() []string {
	attrs := make([]string, 0, len(r.MatchedInfo))
	for _, attr := range KnownAttributes {
		if _, ok := r.MatchedInfo[attr]; ok {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}
