package model

import (
	"encoding/json"
	"fmt"
)

// RiskTier is the coarse exposure bucket derived from a privacy score or
// from aggregate counts.
//
// Design decision: We use iota-based constants rather than string constants
// so that tiers compare and sort naturally (TierHigh > TierMedium > TierLow).
// JSON marshaling converts to the lowercase string form used by the report
// contract.
type RiskTier int

const (
	// TierLow indicates limited exposure (score below 40).
	TierLow RiskTier = iota

	// TierMedium indicates notable exposure that warrants review (score 40-69).
	TierMedium

	// TierHigh indicates serious exposure requiring action (score 70 and up).
	TierHigh
)

// Score thresholds for tier assignment.
const (
	// HighTierScore is the minimum privacy score for TierHigh.
	HighTierScore = 70

	// MediumTierScore is the minimum privacy score for TierMedium.
	MediumTierScore = 40
)

// TierForScore maps a privacy score to its risk tier.
func TierForScore(score int) RiskTier {
	switch {
	case score >= HighTierScore:
		return TierHigh
	case score >= MediumTierScore:
		return TierMedium
	default:
		return TierLow
	}
}

// String returns the lowercase tier name used in reports.
func (t RiskTier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the tier as its lowercase string name.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a tier from its lowercase string name.
func (t *RiskTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "high":
		*t = TierHigh
	case "medium":
		*t = TierMedium
	case "low":
		*t = TierLow
	default:
		return fmt.Errorf("unknown risk tier %q", s)
	}
	return nil
}
