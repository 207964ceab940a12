// Package scan orchestrates a full exposure scan.
//
// A Scanner plans queries from the identity profile, fans them out to the
// configured search providers, deduplicates the discovered candidates,
// then fetches and matches each candidate under bounded concurrency. The
// outcome is a ScanReport: scored detailed results sorted by severity
// plus an aggregate summary.
//
// The scan degrades rather than fails: provider errors cost their
// candidates, unfetchable pages fall back to snippet matching, and any
// per-candidate processing error drops only that candidate. The only
// scan-aborting condition is an empty identity profile.
package scan
