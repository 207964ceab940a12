package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/exposurescan/exposurescan/internal/config"
	"github.com/exposurescan/exposurescan/internal/fetch"
	"github.com/exposurescan/exposurescan/internal/log"
	"github.com/exposurescan/exposurescan/internal/model"
	"github.com/exposurescan/exposurescan/internal/report"
	"github.com/exposurescan/exposurescan/internal/scan"
	"github.com/exposurescan/exposurescan/internal/search"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the open web for exposed personal information",
		Long: `Scan searches the open web for pages that expose personal information.

It plans search queries from the given identity attributes, collects
candidate pages from search engines and platforms, fetches and analyzes
each page, and reports which attributes are exposed where, with a
per-page privacy risk score.

Identity attributes come from flags, from a scan profile file, or both;
flags win when the same attribute is set in both places.

Examples:
  # Scan for a name and email given as flags
  exposurescan scan --name "John Smith" --email john.smith@example.com

  # Scan using the identity from .exposurescan in the current directory
  exposurescan scan

  # Use a specific scan profile file
  exposurescan scan -c myprofile.yaml

  # Output JSON report to a file
  exposurescan scan --name "John Smith" --json -o report.json

  # Route all page fetches through a SOCKS5 proxy
  exposurescan scan --name "John Smith" --proxy 127.0.0.1:1080`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Identity flags (flag names match the profile attribute names)
	cmd.Flags().StringP("name", "n", "", "Full name to search for")
	cmd.Flags().String("email", "", "Email address to search for")
	cmd.Flags().String("phone", "", "Phone number to search for")
	cmd.Flags().String("address", "", "Physical address to search for")

	// Scan profile file
	cmd.Flags().StringP("scan-file", "c", "",
		"Scan profile file path (default: .exposurescan in current or home directory)")

	// Provider flags
	cmd.Flags().StringSlice("engines", config.DefaultSearchEngines,
		"Search engine providers to query (google, bing, duckduckgo)")
	cmd.Flags().StringSlice("platforms", config.DefaultSocialPlatforms,
		"Platform providers to query (github, reddit)")
	cmd.Flags().IntP("pages", "p", config.DefaultPagesPerEngine,
		"Result pages to request per engine per query")

	// Scan behavior flags
	cmd.Flags().IntP("max-results", "r", config.DefaultMaxDetailedResults,
		"Maximum candidates given the full fetch-and-match treatment")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of candidates fetched and analyzed in parallel")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-attempt timeout for fetching one candidate page")
	cmd.Flags().Duration("max-duration", 0,
		"Wall-clock budget for the whole scan (0 disables the deadline)")
	cmd.Flags().String("proxy", "",
		"Route all page fetches through a SOCKS5 proxy at the given host:port")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("save-snapshot", false,
		"Save a write-once JSON snapshot of the report for later comparison")
	cmd.Flags().String("snapshot-dir", "",
		"Directory for report snapshots (default: XDG data directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	// Build config and profile from flags and the optional scan file
	cfg, profile, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("no identity provided (use flags or a scan profile file): %w", err)
	}

	// Set up PII-masking structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cfg, profile, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config and identity Profile from cobra command
// flags and the optional scan profile file. Precedence per value:
// flag > scan file > default.
func buildConfig(cmd *cobra.Command) (*config.Config, model.Profile, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	scanFilePath, err := cmd.Flags().GetString("scan-file")
	if err != nil {
		return nil, nil, err
	}
	cfg.ScanFilePath = scanFilePath

	// Load the scan profile file.
	// If user explicitly specified a path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitScanFile := scanFilePath != ""
	profile := model.Profile{}

	if path := config.FindScanFile(scanFilePath); path != "" {
		sf, err := config.LoadScanFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load scan profile %s: %w", path, err)
		}
		sf.Apply(cfg)
		for attr, value := range sf.Identity {
			if value != "" {
				profile[attr] = value
			}
		}
	} else if explicitScanFile {
		return nil, nil, fmt.Errorf("scan profile file not found: %s", scanFilePath)
	}

	// Identity flags override scan file values per attribute.
	for _, attr := range model.KnownAttributes {
		value, err := cmd.Flags().GetString(attr)
		if err != nil {
			return nil, nil, err
		}
		if value != "" {
			profile[attr] = value
		}
	}

	// Flags override scan file options only when explicitly set, so a
	// scan file value is not clobbered by a flag default.
	if cmd.Flags().Changed("engines") {
		cfg.SearchEngines, err = cmd.Flags().GetStringSlice("engines")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("platforms") {
		cfg.SocialPlatforms, err = cmd.Flags().GetStringSlice("platforms")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("pages") {
		cfg.PagesPerEngine, err = cmd.Flags().GetInt("pages")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("max-results") {
		cfg.MaxDetailedResults, err = cmd.Flags().GetInt("max-results")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("max-duration") {
		cfg.MaxScanDuration, err = cmd.Flags().GetDuration("max-duration")
		if err != nil {
			return nil, nil, err
		}
	}
	if cmd.Flags().Changed("proxy") {
		cfg.SOCKSProxyAddress, err = cmd.Flags().GetString("proxy")
		if err != nil {
			return nil, nil, err
		}
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}

	cfg.SaveSnapshot, err = cmd.Flags().GetBool("save-snapshot")
	if err != nil {
		return nil, nil, err
	}

	cfg.SnapshotDir, err = cmd.Flags().GetString("snapshot-dir")
	if err != nil {
		return nil, nil, err
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = config.XDGDataDir()
	}

	return cfg, profile, nil
}

// runScan executes the scan.
func runScan(ctx context.Context, cfg *config.Config, profile model.Profile, logger *slog.Logger) error {
	registry := buildRegistry(cfg)

	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}

	scanner := scan.NewScanner(cfg, registry, fetcher, logger)

	logger.Info("starting scan",
		"attributes", profile.Attributes(),
		"engines", cfg.SearchEngines,
		"platforms", cfg.SocialPlatforms,
	)

	// Progress goes to stderr so stdout stays clean for the report.
	fmt.Fprintf(os.Stderr, "Scanning for exposed %s...\n",
		strings.Join(profile.Attributes(), ", "))

	scanReport, err := scanner.Scan(ctx, profile, scanOptions(cfg))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Scan completed in %.1fs: %d result(s) found, %d analyzed\n\n",
		scanReport.ScanTime, scanReport.TotalResultsFound, len(scanReport.DetailedResults))

	if err := outputReport(cfg, scanReport); err != nil {
		return err
	}

	// Snapshot failures never fail a completed scan.
	if cfg.SaveSnapshot {
		path, err := report.Snapshot(scanReport, cfg.SnapshotDir)
		if err != nil {
			logger.Error("failed to save snapshot", "error", err)
		} else {
			logger.Info("snapshot saved", "path", path)
		}
	}

	return nil
}

// scanOptions maps the configuration onto per-scan options.
func scanOptions(cfg *config.Config) model.ScanOptions {
	return model.ScanOptions{
		SearchEngines:      cfg.SearchEngines,
		SocialPlatforms:    cfg.SocialPlatforms,
		PagesPerEngine:     cfg.PagesPerEngine,
		MaxDetailedResults: cfg.MaxDetailedResults,
		Concurrency:        cfg.Concurrency,
		MaxScanDuration:    cfg.MaxScanDuration,
	}
}

// buildRegistry registers all known providers with the configured
// politeness settings.
func buildRegistry(cfg *config.Config) *search.Registry {
	engineOpts := []search.EngineOption{
		search.WithUserAgents(cfg.UserAgents),
		search.WithPageDelay(cfg.PageDelay),
		search.WithRateLimitBackoff(cfg.RateLimitBackoff),
		search.WithRetryCap(cfg.ProviderRetryCap),
	}

	registry := search.NewRegistry()
	registry.Register(search.NewGoogle(engineOpts...))
	registry.Register(search.NewBing(engineOpts...))
	registry.Register(search.NewDuckDuckGo(engineOpts...))
	registry.Register(search.NewGitHub())
	registry.Register(search.NewReddit())
	return registry
}

// buildFetcher creates the page fetcher, proxied when configured.
func buildFetcher(cfg *config.Config) (*fetch.Fetcher, error) {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxRetries(cfg.MaxRetries),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithUserAgents(cfg.UserAgents),
	}

	if cfg.SOCKSProxyAddress != "" {
		return fetch.NewProxiedFetcher(cfg.SOCKSProxyAddress, opts...)
	}
	return fetch.NewFetcher(opts...), nil
}

// outputReport outputs the scan report in the requested format.
func outputReport(cfg *config.Config, scanReport *model.ScanReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Reports contain the scanned identity and should only be readable by the owner
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with all data)
	if cfg.JSONReport {
		_, err := report.NewJSONWriter(output, report.WithPrettyPrint()).Write(scanReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		_, err := report.NewMarkdownWriter(output).Write(scanReport)
		return err
	}

	// Human-readable report (default)
	_, err := report.NewTextWriter(output, report.WithVerbose(cfg.Verbose)).Write(scanReport)
	return err
}
