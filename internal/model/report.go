package model

import "time"

// ScanOptions are the caller-controllable knobs for one scan, echoed back
// in the report for reproducibility.
type ScanOptions struct {
	// SearchEngines selects which search-engine providers to query.
	SearchEngines []string `json:"searchEngines"`

	// SocialPlatforms selects which social/code platform providers to query.
	// Social providers only run against the first two planned queries.
	SocialPlatforms []string `json:"socialPlatforms,omitempty"`

	// PagesPerEngine is how many result pages to request per engine.
	PagesPerEngine int `json:"pagesPerEngine"`

	// MaxDetailedResults caps how many unique candidates get the full
	// fetch-and-match treatment.
	MaxDetailedResults int `json:"maxDetailedResults"`

	// Concurrency bounds the number of candidates processed in parallel.
	Concurrency int `json:"concurrency,omitempty"`

	// MaxScanDuration is an optional wall-clock budget for the whole scan.
	// Zero means no overall deadline.
	MaxScanDuration time.Duration `json:"maxScanDuration,omitempty"`
}

// ScanReport is the single JSON document produced by one scan.
// Its field names are the durable contract for front ends and persistence
// writers; do not rename them.
type ScanReport struct {
	// ScanID uniquely identifies this scan. Derived from the profile and
	// the scan start time, so re-running the same profile produces a new ID.
	ScanID string `json:"scanId"`

	// UserInfo echoes the identity profile that was scanned.
	UserInfo Profile `json:"userInfo"`

	// ScanTime is the wall-clock scan duration in seconds.
	ScanTime float64 `json:"scanTime"`

	// TotalResultsFound is the number of unique candidates discovered
	// across all queries and providers, before truncation.
	TotalResultsFound int `json:"totalResultsFound"`

	// DetailedResults holds the assessed results, sorted by privacy score
	// descending. Ties preserve discovery order.
	DetailedResults []DetailedResult `json:"detailedResults"`

	// Summary aggregates the detailed results.
	Summary *Summary `json:"summary"`

	// ScanDate is when the scan started.
	ScanDate time.Time `json:"scanDate"`

	// Options echoes the options the scan ran with.
	Options ScanOptions `json:"options"`
}

// NewScanReport creates a report shell for a scan starting now.
// DetailedResults, Summary, and timing fields are filled in as the scan
// progresses.
func NewScanReport(profile Profile, opts ScanOptions) *ScanReport {
	return &ScanReport{
		UserInfo:        profile.Clone(),
		ScanDate:        time.Now().UTC(),
		DetailedResults: make([]DetailedResult, 0),
		Options:         opts,
	}
}
