package model

import "sort"

// Recommendation texts produced by the summary rule table.
// Centralizing them here keeps report output consistent and testable.
const (
	// RecommendEmailHygiene fires when the email appears on more than two sites.
	RecommendEmailHygiene = "Your email appears on multiple sites. Consider using different emails for different purposes."

	// RecommendSecondaryPhone fires on any phone exposure.
	RecommendSecondaryPhone = "Your phone number is publicly visible. Consider using a secondary number for online services."

	// RecommendAddressPrivacy fires on any address exposure.
	RecommendAddressPrivacy = "Your physical address is exposed online. Review privacy settings on platforms where you've shared it."

	// RecommendUrgentAction fires when the overall risk tier is high.
	RecommendUrgentAction = "HIGH RISK: Your personal information is widely exposed. Take immediate action to review and remove sensitive data."

	// RecommendAllClear is the default message when no other rule fires.
	RecommendAllClear = "No significant exposure was found. Keep reviewing your online presence periodically."
)

// MaxTopDomains caps the number of domains reported in the summary.
const MaxTopDomains = 10

// DomainCount pairs a domain with the number of results it appeared in.
type DomainCount struct {
	// Domain is the result host, lowercased.
	Domain string `json:"domain"`

	// Count is the number of detailed results on this domain.
	Count int `json:"count"`
}

// Summary aggregates all detailed results of one scan into counts, top
// domains, an overall risk tier, and recommendations.
type Summary struct {
	// TotalExposures is the number of detailed results assessed.
	TotalExposures int `json:"totalExposures"`

	// HighRiskExposures counts results in the high tier.
	HighRiskExposures int `json:"highRiskExposures"`

	// MediumRiskExposures counts results in the medium tier.
	MediumRiskExposures int `json:"mediumRiskExposures"`

	// LowRiskExposures counts results in the low tier.
	LowRiskExposures int `json:"lowRiskExposures"`

	// ExposedInformation counts, per identity attribute, how many results
	// exposed it. The additional-PII side channel is excluded.
	ExposedInformation map[string]int `json:"exposedInformation"`

	// TopDomains lists up to MaxTopDomains domains ordered by descending
	// result count; ties keep first-seen order.
	TopDomains []DomainCount `json:"topDomains"`

	// OverallRiskTier is the aggregate tier for the whole scan.
	OverallRiskTier RiskTier `json:"overallRiskLevel"`

	// Recommendations holds the advice produced by the rule table,
	// in rule order.
	Recommendations []string `json:"recommendations"`
}

// NewSummary folds detailed results into a Summary.
//
// The overall tier policy: high if at least one result is high tier,
// else medium if more than two results are medium tier, else low.
// We use the aggressive one-high-result trigger because a single confirmed
// high-exposure page already warrants the urgent-remediation advice.
func NewSummary(results []DetailedResult) *Summary {
	s := &Summary{
		TotalExposures:     len(results),
		ExposedInformation: make(map[string]int),
		Recommendations:    make([]string, 0),
	}

	domainCounts := make(map[string]int)
	domainOrder := make([]string, 0)

	for _, result := range results {
		switch result.RiskTier {
		case TierHigh:
			s.HighRiskExposures++
		case TierMedium:
			s.MediumRiskExposures++
		case TierLow:
			s.LowRiskExposures++
		}

		for attr := range result.MatchedInfo {
			s.ExposedInformation[attr]++
		}

		if domain := result.Domain(); domain != "" {
			if _, seen := domainCounts[domain]; !seen {
				domainOrder = append(domainOrder, domain)
			}
			domainCounts[domain]++
		}
	}

	s.TopDomains = topDomains(domainCounts, domainOrder)
	s.OverallRiskTier = overallTier(s.HighRiskExposures, s.MediumRiskExposures)
	s.Recommendations = buildRecommendations(s)

	return s
}

// overallTier applies the aggregate tier policy.
func overallTier(high, medium int) RiskTier {
	switch {
	case high >= 1:
		return TierHigh
	case medium > 2:
		return TierMedium
	default:
		return TierLow
	}
}

// topDomains orders domains by descending count, ties by first-seen order,
// truncated to MaxTopDomains.
func topDomains(counts map[string]int, order []string) []DomainCount {
	firstSeen := make(map[string]int, len(order))
	for i, domain := range order {
		firstSeen[domain] = i
	}

	ranked := make([]DomainCount, 0, len(order))
	for _, domain := range order {
		ranked = append(ranked, DomainCount{Domain: domain, Count: counts[domain]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Domain] < firstSeen[ranked[j].Domain]
	})

	if len(ranked) > MaxTopDomains {
		ranked = ranked[:MaxTopDomains]
	}
	return ranked
}

// buildRecommendations applies the fixed rule table.
// Rules fire in a fixed order so report output is deterministic.
func buildRecommendations(s *Summary) []string {
	recommendations := make([]string, 0, 4)

	if s.ExposedInformation[AttributeEmail] > 2 {
		recommendations = append(recommendations, RecommendEmailHygiene)
	}
	if s.ExposedInformation[AttributePhone] > 0 {
		recommendations = append(recommendations, RecommendSecondaryPhone)
	}
	if s.ExposedInformation[AttributeAddress] > 0 {
		recommendations = append(recommendations, RecommendAddressPrivacy)
	}
	if s.OverallRiskTier == TierHigh {
		recommendations = append(recommendations, RecommendUrgentAction)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, RecommendAllClear)
	}
	return recommendations
}
