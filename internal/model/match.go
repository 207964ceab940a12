package model

// Match type constants. They record how an identity attribute was found,
// which in turn documents how trustworthy the match is.
const (
	// MatchExact means the attribute value was found verbatim in page content.
	MatchExact = "exact"

	// MatchPartial means only part of the attribute matched (name tokens,
	// email local part, phone digit substring, address components).
	MatchPartial = "partial"

	// MatchSnippet means the match was computed from the provider's
	// title+snippet only because page content could not be fetched.
	// Snippet matches carry reduced provenance and a capped score.
	MatchSnippet = "snippet"
)

// Match records one identity attribute found in page content, together
// with a confidence value and the surrounding context.
type Match struct {
	// Value is the attribute value from the identity profile.
	Value string `json:"value"`

	// Confidence is the match confidence in [0, 1].
	// 1.0 means an exact occurrence of the attribute value.
	Confidence float64 `json:"confidence"`

	// MatchType is one of MatchExact, MatchPartial, or MatchSnippet.
	MatchType string `json:"matchType"`

	// Context is a short excerpt of the text surrounding the first
	// occurrence, with ellipsis markers where it was truncated.
	Context string `json:"context,omitempty"`

	// MatchedParts lists the individual tokens or components that matched
	// for partial matches (name tokens, address components).
	MatchedParts []string `json:"matchedParts,omitempty"`

	// FoundValue is the value as it appeared on the page when it differs
	// from the profile value (e.g. a similar email address).
	FoundValue string `json:"foundValue,omitempty"`
}
