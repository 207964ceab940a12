// Package model defines the core data structures shared across exposurescan:
// identity profiles, search candidates, match records, detailed results,
// risk tiers, summaries, and the final scan report.
//
// The package is intentionally dependency-free so that every other internal
// package can import it without cycles.
package model
