package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Where applicable these match the behavior the scanner was tuned for:
// polite toward target hosts, tolerant of slow pages, bounded everywhere.
const (
	// DefaultTimeout is the per-attempt timeout for fetching one candidate
	// page. 30 seconds tolerates slow hosts without letting a single page
	// stall a worker indefinitely.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of additional fetch attempts after a
	// transient failure. With exponential backoff this bounds a candidate's
	// worst case to maxRetries+1 attempts.
	DefaultMaxRetries = 2

	// DefaultConcurrency bounds how many candidates are fetched and matched
	// in parallel. 10 keeps throughput reasonable without overwhelming
	// target hosts; unbounded fan-out is never allowed.
	DefaultConcurrency = 10

	// DefaultPageDelay is the fixed delay between successive result pages
	// requested from the same provider. A politeness setting: search
	// engines rate limit aggressively when paged too fast.
	DefaultPageDelay = 2 * time.Second

	// DefaultRateLimitBackoff is the base wait after a provider signals
	// rate limiting. The wait doubles on each consecutive signal.
	DefaultRateLimitBackoff = 5 * time.Second

	// DefaultProviderRetryCap limits rate-limit backoff attempts per page.
	// After the cap the page is abandoned and partial results are kept.
	DefaultProviderRetryCap = 3

	// DefaultPagesPerEngine is how many result pages to request per engine
	// per query.
	DefaultPagesPerEngine = 3

	// DefaultMaxDetailedResults caps how many unique candidates receive the
	// full fetch-and-match treatment per scan.
	DefaultMaxDetailedResults = 20

	// DefaultMaxBodySize limits the response body size read per fetch.
	// 5MB is generous for HTML pages while preventing memory exhaustion.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "exposurescan"
)

// defaultUserAgents is the built-in browser user-agent pool. Requests
// rotate through the pool so that repeated fetches do not present a
// single fingerprint.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// defaultSocialDomainTokens marks hosts whose exposure is weighted higher:
// content on social platforms is broadly indexed and attached to a persona.
var defaultSocialDomainTokens = []string{"facebook", "twitter", "linkedin", "instagram"}

// defaultBreachDomainTokens marks hosts associated with dumps and leaks,
// weighted highest of all.
var defaultBreachDomainTokens = []string{"pastebin", "github", "breach"}

// DefaultSearchEngines are the engines queried when the caller selects none.
var DefaultSearchEngines = []string{"google", "bing"}

// DefaultSocialPlatforms are the platform providers queried when the caller
// selects none.
var DefaultSocialPlatforms = []string{"github", "reddit"}

// Config holds all configuration options for exposurescan.
// It is populated once (from CLI flags and the optional scan file) and
// passed through the application via dependency injection; components must
// not mutate it after construction.
//
// Design decision: We use a single flat struct instead of nested structs
// (FetchConfig, SearchConfig, ...) for simplicity. The number of options is
// manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Timeout is the per-attempt timeout for fetching one candidate page.
	Timeout time.Duration

	// MaxRetries is the number of additional fetch attempts after a
	// transient failure.
	MaxRetries int

	// Concurrency bounds parallel candidate processing.
	Concurrency int

	// PageDelay is the fixed delay between result pages from one provider.
	PageDelay time.Duration

	// RateLimitBackoff is the base backoff after a rate-limit signal;
	// it doubles per consecutive signal up to ProviderRetryCap attempts.
	RateLimitBackoff time.Duration

	// ProviderRetryCap limits rate-limit retries per result page.
	ProviderRetryCap int

	// PagesPerEngine is how many result pages to request per engine.
	PagesPerEngine int

	// MaxDetailedResults caps the candidates given full treatment.
	MaxDetailedResults int

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// UserAgents is the immutable user-agent pool for outbound requests.
	UserAgents []string

	// SOCKSProxyAddress optionally routes all fetches through a SOCKS5
	// proxy in "host:port" form. Empty means direct connections.
	SOCKSProxyAddress string

	// SocialDomainTokens are host substrings that apply the social-platform
	// score multiplier.
	SocialDomainTokens []string

	// BreachDomainTokens are host substrings that apply the breach/dump
	// score multiplier.
	BreachDomainTokens []string

	// SearchEngines selects the engine providers for a scan.
	SearchEngines []string

	// SocialPlatforms selects the platform providers for a scan.
	SocialPlatforms []string

	// MaxScanDuration is an optional wall-clock budget for a whole scan.
	// Zero disables the overall deadline.
	MaxScanDuration time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output on stdout.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output on stdout.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is an explicit output file path for the report.
	// Empty means stdout.
	ReportFile string

	// SaveSnapshot writes the write-once JSON snapshot of the report to
	// SnapshotDir after a scan completes.
	SaveSnapshot bool

	// SnapshotDir is the directory for report snapshots.
	// Empty means the XDG data directory.
	SnapshotDir string

	// ScanFilePath is the path to the scan profile file.
	// If empty, the tool searches for .exposurescan in the current
	// directory and then in the user's home directory.
	ScanFilePath string
}

// NewConfig creates a Config with default values.
// All fields are set to safe, sensible defaults; callers override specific
// values after creation and before Validate.
func NewConfig() *Config {
	return &Config{
		Timeout:            DefaultTimeout,
		MaxRetries:         DefaultMaxRetries,
		Concurrency:        DefaultConcurrency,
		PageDelay:          DefaultPageDelay,
		RateLimitBackoff:   DefaultRateLimitBackoff,
		ProviderRetryCap:   DefaultProviderRetryCap,
		PagesPerEngine:     DefaultPagesPerEngine,
		MaxDetailedResults: DefaultMaxDetailedResults,
		MaxBodySize:        DefaultMaxBodySize,
		UserAgents:         defaultUserAgents,
		SocialDomainTokens: defaultSocialDomainTokens,
		BreachDomainTokens: defaultBreachDomainTokens,
		SearchEngines:      DefaultSearchEngines,
		SocialPlatforms:    DefaultSocialPlatforms,
	}
}

// UserAgentFor picks a user agent for the nth request of a component.
// Selection is a pure function of n so the Config stays immutable; callers
// pass an attempt or request counter they already track.
func (c *Config) UserAgentFor(n int) string {
	if len(c.UserAgents) == 0 {
		return ""
	}
	if n < 0 {
		n = -n
	}
	return c.UserAgents[n%len(c.UserAgents)]
}

// XDGDataDir returns the XDG data directory for exposurescan.
// On Linux: ~/.local/share/exposurescan
// On macOS: ~/Library/Application Support/exposurescan
// On Windows: %LOCALAPPDATA%\exposurescan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for exposurescan.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first error found; fixing one error often makes the
// others irrelevant.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.PagesPerEngine <= 0 {
		return ErrInvalidPagesPerEngine
	}
	if c.MaxDetailedResults <= 0 {
		return ErrInvalidMaxDetailedResults
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.PageDelay < 0 {
		return ErrInvalidPageDelay
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if len(c.UserAgents) == 0 {
		return ErrNoUserAgents
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
