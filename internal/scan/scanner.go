package scan

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/exposurescan/exposurescan/internal/config"
	"github.com/exposurescan/exposurescan/internal/fetch"
	"github.com/exposurescan/exposurescan/internal/match"
	"github.com/exposurescan/exposurescan/internal/model"
	"github.com/exposurescan/exposurescan/internal/query"
	"github.com/exposurescan/exposurescan/internal/score"
	"github.com/exposurescan/exposurescan/internal/search"
	"golang.org/x/crypto/sha3"
	"golang.org/x/sync/errgroup"
)

// platformQueryLimit is how many of the planned queries are also sent to
// platform providers (GitHub, Reddit). The first queries carry the
// highest-signal attribute combinations; platform APIs have tight
// unauthenticated quotas, so later queries go to search engines only.
const platformQueryLimit = 2

// Fetcher retrieves a candidate page. Satisfied by fetch.Fetcher;
// abstracted so tests can substitute canned pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// Scanner runs exposure scans. Construct once, reuse across scans; the
// query cache is instance-scoped and survives between scans.
type Scanner struct {
	cfg        *config.Config
	registry   *search.Registry
	fetcher    Fetcher
	aggregator *search.Aggregator
	planner    *query.Planner
	matcher    *match.Matcher
	engine     *score.Engine
	cache      *queryCache
	logger     *slog.Logger
}

// NewScanner creates a Scanner.
func NewScanner(cfg *config.Config, registry *search.Registry, fetcher Fetcher, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		cfg:        cfg,
		registry:   registry,
		fetcher:    fetcher,
		aggregator: search.NewAggregator(logger),
		planner:    query.NewPlanner(),
		matcher:    match.NewMatcher(),
		engine:     score.NewEngine(cfg.SocialDomainTokens, cfg.BreachDomainTokens),
		cache:      newQueryCache(),
		logger:     logger,
	}
}

// Scan runs one full scan for the profile and returns the report.
//
// Only profile validation errors abort the scan. Every other failure
// degrades: providers that error contribute nothing, unfetchable pages
// fall back to snippet matching, and candidates whose processing fails
// are dropped from the detailed list.
func (s *Scanner) Scan(ctx context.Context, profile model.Profile, opts model.ScanOptions) (*model.ScanReport, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	opts = s.effectiveOptions(opts)
	engines, platforms, err := s.selectProviders(opts)
	if err != nil {
		return nil, err
	}

	if opts.MaxScanDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxScanDuration)
		defer cancel()
	}

	start := time.Now()
	report := model.NewScanReport(profile, opts)
	report.ScanID = scanID(profile, start)

	queries := s.planner.Plan(profile)
	s.logger.Debug("planned queries", "count", len(queries))

	candidates := s.discover(ctx, queries, engines, platforms, opts.PagesPerEngine)
	report.TotalResultsFound = len(candidates)

	if len(candidates) > opts.MaxDetailedResults {
		candidates = candidates[:opts.MaxDetailedResults]
	}

	results := s.processAll(ctx, profile, candidates, opts.Concurrency)

	// Stable sort keeps discovery order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PrivacyScore > results[j].PrivacyScore
	})

	report.DetailedResults = results
	report.Summary = model.NewSummary(results)
	report.ScanTime = time.Since(start).Seconds()

	s.logger.Debug("scan complete",
		"candidates", report.TotalResultsFound,
		"detailed", len(results),
		"seconds", report.ScanTime)

	return report, nil
}

// effectiveOptions fills unset options from the configuration.
func (s *Scanner) effectiveOptions(opts model.ScanOptions) model.ScanOptions {
	if len(opts.SearchEngines) == 0 {
		opts.SearchEngines = s.cfg.SearchEngines
	}
	if opts.SocialPlatforms == nil {
		opts.SocialPlatforms = s.cfg.SocialPlatforms
	}
	if opts.PagesPerEngine <= 0 {
		opts.PagesPerEngine = s.cfg.PagesPerEngine
	}
	if opts.MaxDetailedResults <= 0 {
		opts.MaxDetailedResults = s.cfg.MaxDetailedResults
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = s.cfg.Concurrency
	}
	if opts.MaxScanDuration <= 0 {
		opts.MaxScanDuration = s.cfg.MaxScanDuration
	}
	return opts
}

// selectProviders resolves the option lists against the registry.
func (s *Scanner) selectProviders(opts model.ScanOptions) (engines, platforms []search.Provider, err error) {
	engines, err = s.registry.Select(opts.SearchEngines)
	if err != nil {
		return nil, nil, err
	}
	platforms, err = s.registry.Select(opts.SocialPlatforms)
	if err != nil {
		return nil, nil, err
	}
	if len(engines)+len(platforms) == 0 {
		return nil, nil, ErrNoProviders
	}
	return engines, platforms, nil
}

// discover runs all queries against their provider sets and returns the
// globally deduplicated candidates in discovery order.
func (s *Scanner) discover(ctx context.Context, queries []string, engines, platforms []search.Provider, pages int) []model.Candidate {
	seen := make(map[string]bool)
	var all []model.Candidate

	for i, q := range queries {
		providers := engines
		if i < platformQueryLimit && len(platforms) > 0 {
			providers = append(append([]search.Provider{}, engines...), platforms...)
		}
		if len(providers) == 0 {
			continue
		}

		key := s.cache.key(q, providers)
		candidates, ok := s.cache.get(key)
		if !ok {
			candidates = s.aggregator.SearchAll(ctx, providers, q, pages)
			s.cache.put(key, candidates)
		}

		for _, c := range candidates {
			k := c.Key()
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			all = append(all, c)
		}
	}

	return all
}

// processAll fetches and matches candidates under bounded concurrency.
// Result order equals candidate order; failed candidates leave nil slots
// that are compacted out.
func (s *Scanner) processAll(ctx context.Context, profile model.Profile, candidates []model.Candidate, concurrency int) []model.DetailedResult {
	slots := make([]*model.DetailedResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			result, err := s.process(gctx, profile, c)
			if err != nil {
				// Degradation contract: log and drop the candidate.
				s.logger.Warn("candidate processing failed",
					"url", c.URL,
					"error", err)
				return nil
			}
			slots[i] = result
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = g.Wait()

	results := make([]model.DetailedResult, 0, len(candidates))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// process handles one candidate: fetch, match (or snippet fallback),
// score, and assess.
func (s *Scanner) process(ctx context.Context, profile model.Profile, c model.Candidate) (*model.DetailedResult, error) {
	domain := c.Domain()

	page, err := s.fetcher.Fetch(ctx, c.URL)
	switch {
	case err == nil:
		outcome := s.matcher.Match(profile, match.ExtractText(page.Body))
		privacyScore := s.engine.Score(outcome.Matched, outcome.AdditionalPII, domain)
		return s.assemble(c, outcome, privacyScore), nil

	case errors.Is(err, fetch.ErrNotFound) || errors.Is(err, fetch.ErrUnavailable):
		s.logger.Debug("falling back to snippet matching", "url", c.URL)
		outcome := s.matcher.MatchSnippet(profile, c.Title, c.Snippet)
		// Snippet text is the provider's paraphrase, not confirmed page
		// content, so the domain multiplier does not apply here.
		privacyScore := s.engine.Score(outcome.Matched, nil, "")
		if privacyScore > match.SnippetScoreCap {
			privacyScore = match.SnippetScoreCap
		}
		return s.assemble(c, outcome, privacyScore), nil

	default:
		return nil, fmt.Errorf("fetching %s: %w", c.URL, err)
	}
}

// assemble builds the DetailedResult for one candidate.
func (s *Scanner) assemble(c model.Candidate, outcome match.Result, privacyScore int) *model.DetailedResult {
	tier := model.TierForScore(privacyScore)
	risks, recommendations := score.Assess(outcome.Matched, outcome.AdditionalPII, tier)

	return &model.DetailedResult{
		Candidate:       c,
		MatchedInfo:     outcome.Matched,
		AdditionalPII:   outcome.AdditionalPII,
		PrivacyScore:    privacyScore,
		RiskTier:        tier,
		Risks:           risks,
		Recommendations: recommendations,
		ExtractedAt:     time.Now().UTC(),
	}
}

// scanID derives a stable identifier from the profile fingerprint and the
// scan start time. SHA3 keeps raw identity attributes out of the ID.
func scanID(profile model.Profile, start time.Time) string {
	sum := sha3.Sum256([]byte(profile.Fingerprint() + start.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:16])
}
