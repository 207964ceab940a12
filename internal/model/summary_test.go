package model

import "testing"

func resultWithTier(url string, tier RiskTier, attrs ...string) DetailedResult {
	matched := make(map[string]Match, len(attrs))
	for _, attr := range attrs {
		matched[attr] = Match{Value: attr, Confidence: 1.0, MatchType: MatchExact}
	}
	return DetailedResult{
		Candidate:   Candidate{URL: url},
		MatchedInfo: matched,
		RiskTier:    tier,
	}
}

// TestNewSummaryTierCounts tests tier counting and the one-high-result
// overall policy.
func TestNewSummaryTierCounts(t *testing.T) {
	t.Parallel()

	results := []DetailedResult{
		resultWithTier("https://a.example.com/1", TierHigh, AttributeEmail),
		resultWithTier("https://b.example.com/2", TierHigh, AttributeEmail),
		resultWithTier("https://c.example.com/3", TierHigh, AttributePhone),
		resultWithTier("https://d.example.com/4", TierMedium, AttributeName),
	}

	s := NewSummary(results)

	if s.TotalExposures != 4 {
		t.Errorf("expected 4 total exposures, got %d", s.TotalExposures)
	}
	if s.HighRiskExposures != 3 || s.MediumRiskExposures != 1 || s.LowRiskExposures != 0 {
		t.Errorf("unexpected tier counts: high=%d medium=%d low=%d",
			s.HighRiskExposures, s.MediumRiskExposures, s.LowRiskExposures)
	}
	if s.OverallRiskTier != TierHigh {
		t.Errorf("expected overall high, got %s", s.OverallRiskTier)
	}
	if s.ExposedInformation[AttributeEmail] != 2 {
		t.Errorf("expected email counted twice, got %d", s.ExposedInformation[AttributeEmail])
	}
	if s.ExposedInformation[AttributePhone] != 1 {
		t.Errorf("expected phone counted once, got %d", s.ExposedInformation[AttributePhone])
	}
}

// TestNewSummaryOverallTierPolicy tests the medium and low fallbacks.
func TestNewSummaryOverallTierPolicy(t *testing.T) {
	t.Parallel()

	t.Run("single high result is enough for overall high", func(t *testing.T) {
		t.Parallel()

		s := NewSummary([]DetailedResult{
			resultWithTier("https://a.example.com/", TierHigh),
		})
		if s.OverallRiskTier != TierHigh {
			t.Errorf("expected high, got %s", s.OverallRiskTier)
		}
	})

	t.Run("more than two medium results yield overall medium", func(t *testing.T) {
		t.Parallel()

		s := NewSummary([]DetailedResult{
			resultWithTier("https://a.example.com/", TierMedium),
			resultWithTier("https://b.example.com/", TierMedium),
			resultWithTier("https://c.example.com/", TierMedium),
		})
		if s.OverallRiskTier != TierMedium {
			t.Errorf("expected medium, got %s", s.OverallRiskTier)
		}
	})

	t.Run("two medium results stay low", func(t *testing.T) {
		t.Parallel()

		s := NewSummary([]DetailedResult{
			resultWithTier("https://a.example.com/", TierMedium),
			resultWithTier("https://b.example.com/", TierMedium),
		})
		if s.OverallRiskTier != TierLow {
			t.Errorf("expected low, got %s", s.OverallRiskTier)
		}
	})

	t.Run("no results yield low with reassurance", func(t *testing.T) {
		t.Parallel()

		s := NewSummary(nil)
		if s.OverallRiskTier != TierLow {
			t.Errorf("expected low, got %s", s.OverallRiskTier)
		}
		if len(s.Recommendations) != 1 || s.Recommendations[0] != RecommendAllClear {
			t.Errorf("expected only the default reassurance, got %v", s.Recommendations)
		}
	})
}

// TestNewSummaryTopDomains tests domain ordering: descending count,
// ties by first-seen order, capped at ten.
func TestNewSummaryTopDomains(t *testing.T) {
	t.Parallel()

	results := []DetailedResult{
		resultWithTier("https://one.example.com/a", TierLow),
		resultWithTier("https://two.example.com/a", TierLow),
		resultWithTier("https://two.example.com/b", TierLow),
		resultWithTier("https://three.example.com/a", TierLow),
	}

	s := NewSummary(results)

	if len(s.TopDomains) != 3 {
		t.Fatalf("expected 3 domains, got %d", len(s.TopDomains))
	}
	if s.TopDomains[0].Domain != "two.example.com" || s.TopDomains[0].Count != 2 {
		t.Errorf("expected two.example.com first with count 2, got %+v", s.TopDomains[0])
	}
	// one.example.com and three.example.com tie at 1; first-seen wins.
	if s.TopDomains[1].Domain != "one.example.com" {
		t.Errorf("expected one.example.com second, got %q", s.TopDomains[1].Domain)
	}
	if s.TopDomains[2].Domain != "three.example.com" {
		t.Errorf("expected three.example.com third, got %q", s.TopDomains[2].Domain)
	}
}

// TestNewSummaryRecommendations tests the recommendation rule table.
func TestNewSummaryRecommendations(t *testing.T) {
	t.Parallel()

	results := []DetailedResult{
		resultWithTier("https://a.example.com/", TierHigh, AttributeEmail, AttributePhone),
		resultWithTier("https://b.example.com/", TierLow, AttributeEmail),
		resultWithTier("https://c.example.com/", TierLow, AttributeEmail),
		resultWithTier("https://d.example.com/", TierLow, AttributeAddress),
	}

	s := NewSummary(results)

	want := []string{
		RecommendEmailHygiene,
		RecommendSecondaryPhone,
		RecommendAddressPrivacy,
		RecommendUrgentAction,
	}
	if len(s.Recommendations) != len(want) {
		t.Fatalf("expected %d recommendations, got %d: %v", len(want), len(s.Recommendations), s.Recommendations)
	}
	for i := range want {
		if s.Recommendations[i] != want[i] {
			t.Errorf("recommendation[%d]: expected %q, got %q", i, want[i], s.Recommendations[i])
		}
	}
}
