// Package score turns match results into privacy scores and risk tiers.
//
// Each matched attribute contributes its base weight scaled by match
// confidence; the sum is then amplified when the hosting domain is a
// social platform or a known breach/dump site, and clamped to [0,100].
// The package also derives the per-result risk notes and remediation
// recommendations shown in reports.
package score
