package match

import (
	"testing"

	"github.com/exposurescan/exposurescan/internal/model"
)

// TestMatchSnippetFixedConfidences tests the reduced-provenance fallback.
func TestMatchSnippetFixedConfidences(t *testing.T) {
	t.Parallel()

	profile := model.Profile{
		model.AttributeName:  "John Smith",
		model.AttributeEmail: "john.smith@example.com",
		model.AttributePhone: "555-123-4567",
	}

	result := NewMatcher().MatchSnippet(profile,
		"John Smith - Profile",
		"Reach John Smith at john.smith@example.com or (555) 123-4567.")

	tests := []struct {
		attr string
		want float64
	}{
		{model.AttributeName, snippetNameConfidence},
		{model.AttributeEmail, snippetEmailConfidence},
		{model.AttributePhone, snippetPhoneConfidence},
	}
	for _, tt := range tests {
		rec, ok := result.Matched[tt.attr]
		if !ok {
			t.Errorf("expected %s snippet match", tt.attr)
			continue
		}
		if rec.Confidence != tt.want {
			t.Errorf("%s: expected confidence %v, got %v", tt.attr, tt.want, rec.Confidence)
		}
		if rec.MatchType != model.MatchSnippet {
			t.Errorf("%s: expected snippet match type, got %q", tt.attr, rec.MatchType)
		}
	}
}

// TestMatchSnippetIgnoresAddress tests that the fallback never reports
// address matches.
func TestMatchSnippetIgnoresAddress(t *testing.T) {
	t.Parallel()

	profile := model.Profile{model.AttributeAddress: "123 Main Street, Springfield"}
	result := NewMatcher().MatchSnippet(profile, "Directory", "123 Main Street, Springfield listing")

	if len(result.Matched) != 0 {
		t.Errorf("expected no snippet matches for address-only profile, got %v", result.Matched)
	}
}

// TestMatchSnippetNoAdditionalPII tests that snippets never populate the
// generic PII side channel.
func TestMatchSnippetNoAdditionalPII(t *testing.T) {
	t.Parallel()

	profile := model.Profile{model.AttributeName: "John Smith"}
	result := NewMatcher().MatchSnippet(profile, "t", "SSN 123-45-6789")

	if result.AdditionalPII != nil {
		t.Errorf("expected nil additional PII from snippet matching, got %v", result.AdditionalPII)
	}
}
