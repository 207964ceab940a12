package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTimeout is returned when the per-attempt fetch timeout
	// is not positive. A zero timeout would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the candidate worker limit
	// is not positive. Unbounded fan-out is never allowed, so zero is
	// not a valid "no limit" sentinel.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidPagesPerEngine is returned when the per-engine page count
	// is not positive.
	ErrInvalidPagesPerEngine = errors.New("invalid pages per engine: must be positive")

	// ErrInvalidMaxDetailedResults is returned when the detailed-result cap
	// is not positive.
	ErrInvalidMaxDetailedResults = errors.New("invalid max detailed results: must be positive")

	// ErrInvalidMaxRetries is returned when the fetch retry count is negative.
	// Zero retries is valid and means a single attempt.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidPageDelay is returned when the inter-page delay is negative.
	ErrInvalidPageDelay = errors.New("invalid page delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrNoUserAgents is returned when the user-agent pool is empty.
	// Every outbound request must carry a User-Agent header.
	ErrNoUserAgents = errors.New("user-agent pool is empty: at least one user agent is required")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown output formats are requested at the same time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
