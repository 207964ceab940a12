package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/exposurescan/exposurescan/internal/config"
	"github.com/exposurescan/exposurescan/internal/model"
)

// TestNewScanCmd tests the scan command creation.
func TestNewScanCmd(t *testing.T) {
	t.Parallel()

	cmd := NewScanCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "scan" {
			t.Errorf("expected use 'scan', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has name flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("name")
		if flag == nil {
			t.Fatal("expected name flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
	})

	t.Run("has identity flags for every attribute", func(t *testing.T) {
		t.Parallel()
		for _, attr := range model.KnownAttributes {
			if cmd.Flags().Lookup(attr) == nil {
				t.Errorf("expected %s flag", attr)
			}
		}
	})

	t.Run("has scan-file flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("scan-file")
		if flag == nil {
			t.Fatal("expected scan-file flag")
		}
		if flag.Shorthand != "c" {
			t.Errorf("expected shorthand 'c', got %q", flag.Shorthand)
		}
	})

	t.Run("has pages flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("pages")
		if flag == nil {
			t.Fatal("expected pages flag")
		}
		if flag.Shorthand != "p" {
			t.Errorf("expected shorthand 'p', got %q", flag.Shorthand)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
	})

	t.Run("has provider flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("engines") == nil {
			t.Error("expected engines flag")
		}
		if cmd.Flags().Lookup("platforms") == nil {
			t.Error("expected platforms flag")
		}
	})

	t.Run("has snapshot flags", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("save-snapshot") == nil {
			t.Error("expected save-snapshot flag")
		}
		if cmd.Flags().Lookup("snapshot-dir") == nil {
			t.Error("expected snapshot-dir flag")
		}
	})
}

// TestGetVerboseFlag tests the verbose flag retrieval.
func TestGetVerboseFlag(t *testing.T) {
	t.Run("returns false when flag not set", func(t *testing.T) {
		cmd := NewScanCmd()
		result := getVerboseFlag(cmd)
		if result {
			t.Error("expected false when flag not set")
		}
	})

	t.Run("returns value from parent verbose flag", func(t *testing.T) {
		root := NewRootCmd()
		// Set verbose flag to true
		_ = root.PersistentFlags().Set("verbose", "true")

		// Get scan subcommand
		scanCmd, _, err := root.Find([]string{"scan"})
		if err != nil {
			t.Fatalf("failed to find scan command: %v", err)
		}

		result := getVerboseFlag(scanCmd)
		if !result {
			t.Error("expected true from parent verbose flag")
		}
	})
}

// chdirEmpty moves the test into an empty directory with an empty home so
// no ambient .exposurescan file leaks into scan file discovery.
func chdirEmpty(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)
}

// TestBuildConfig tests configuration building from flags.
func TestBuildConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("name", "John Smith")
		cfg, profile, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg == nil {
			t.Fatal("expected non-nil config")
		}
		if profile.Get(model.AttributeName) != "John Smith" {
			t.Errorf("expected name 'John Smith', got %q", profile.Get(model.AttributeName))
		}
		if cfg.PagesPerEngine != config.DefaultPagesPerEngine {
			t.Errorf("expected default pages %d, got %d", config.DefaultPagesPerEngine, cfg.PagesPerEngine)
		}
		if cfg.SnapshotDir == "" {
			t.Error("expected snapshot dir to default to the XDG data directory")
		}
	})

	t.Run("builds config with custom pages", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("pages", "5")
		cfg, _, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.PagesPerEngine != 5 {
			t.Errorf("expected PagesPerEngine 5, got %d", cfg.PagesPerEngine)
		}
	})

	t.Run("builds config with proxy", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("proxy", "127.0.0.1:1080")
		cfg, _, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.SOCKSProxyAddress != "127.0.0.1:1080" {
			t.Errorf("expected proxy '127.0.0.1:1080', got %q", cfg.SOCKSProxyAddress)
		}
	})

	t.Run("builds config with JSON flag", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("json", "true")
		cfg, _, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
	})

	t.Run("builds config with output file", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("output", "/tmp/report.json")
		cfg, _, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.ReportFile != "/tmp/report.json" {
			t.Errorf("expected ReportFile '/tmp/report.json', got %q", cfg.ReportFile)
		}
	})

	t.Run("loads identity and options from scan file", func(t *testing.T) {
		chdirEmpty(t)

		tmpDir := t.TempDir()
		scanFile := filepath.Join(tmpDir, ".exposurescan")
		content := []byte(`
identity:
  name: "John Smith"
  email: "john.smith@example.com"
options:
  searchEngines: [duckduckgo]
  pagesPerEngine: 7
  maxScanDuration: 5m
proxy: "127.0.0.1:9050"
`)
		if err := os.WriteFile(scanFile, content, 0o600); err != nil {
			t.Fatalf("failed to write scan file: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("scan-file", scanFile)
		cfg, profile, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if profile.Get(model.AttributeName) != "John Smith" {
			t.Errorf("expected name from scan file, got %q", profile.Get(model.AttributeName))
		}
		if profile.Get(model.AttributeEmail) != "john.smith@example.com" {
			t.Errorf("expected email from scan file, got %q", profile.Get(model.AttributeEmail))
		}
		if len(cfg.SearchEngines) != 1 || cfg.SearchEngines[0] != "duckduckgo" {
			t.Errorf("expected engines [duckduckgo], got %v", cfg.SearchEngines)
		}
		if cfg.PagesPerEngine != 7 {
			t.Errorf("expected PagesPerEngine 7, got %d", cfg.PagesPerEngine)
		}
		if cfg.MaxScanDuration != 5*time.Minute {
			t.Errorf("expected MaxScanDuration 5m, got %v", cfg.MaxScanDuration)
		}
		if cfg.SOCKSProxyAddress != "127.0.0.1:9050" {
			t.Errorf("expected proxy from scan file, got %q", cfg.SOCKSProxyAddress)
		}
	})

	t.Run("identity flags override scan file values", func(t *testing.T) {
		chdirEmpty(t)

		tmpDir := t.TempDir()
		scanFile := filepath.Join(tmpDir, ".exposurescan")
		content := []byte(`
identity:
  name: "John Smith"
  email: "old@example.com"
`)
		if err := os.WriteFile(scanFile, content, 0o600); err != nil {
			t.Fatalf("failed to write scan file: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("scan-file", scanFile)
		_ = cmd.Flags().Set("email", "new@example.com")
		_, profile, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if profile.Get(model.AttributeEmail) != "new@example.com" {
			t.Errorf("expected flag to override scan file email, got %q", profile.Get(model.AttributeEmail))
		}
		if profile.Get(model.AttributeName) != "John Smith" {
			t.Errorf("expected name kept from scan file, got %q", profile.Get(model.AttributeName))
		}
	})

	t.Run("option flags override scan file values", func(t *testing.T) {
		chdirEmpty(t)

		tmpDir := t.TempDir()
		scanFile := filepath.Join(tmpDir, ".exposurescan")
		content := []byte(`
identity:
  name: "John Smith"
options:
  pagesPerEngine: 7
`)
		if err := os.WriteFile(scanFile, content, 0o600); err != nil {
			t.Fatalf("failed to write scan file: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("scan-file", scanFile)
		_ = cmd.Flags().Set("pages", "2")
		cfg, _, err := buildConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.PagesPerEngine != 2 {
			t.Errorf("expected flag to override scan file pages, got %d", cfg.PagesPerEngine)
		}
	})

	t.Run("returns error for missing explicit scan file", func(t *testing.T) {
		chdirEmpty(t)

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("scan-file", "/nonexistent/.exposurescan")
		_, _, err := buildConfig(cmd)
		if err == nil {
			t.Fatal("expected error for missing scan file")
		}
		if !strings.Contains(err.Error(), "not found") {
			t.Errorf("expected 'not found' error, got %v", err)
		}
	})

	t.Run("returns error for invalid scan file", func(t *testing.T) {
		chdirEmpty(t)

		tmpDir := t.TempDir()
		scanFile := filepath.Join(tmpDir, "invalid.yaml")
		if err := os.WriteFile(scanFile, []byte("{invalid yaml"), 0o600); err != nil {
			t.Fatalf("failed to write scan file: %v", err)
		}

		cmd := NewScanCmd()
		_ = cmd.Flags().Set("scan-file", scanFile)
		_, _, err := buildConfig(cmd)
		if err == nil {
			t.Fatal("expected error for invalid scan file")
		}
	})
}

// TestScanOptions tests the configuration to scan options mapping.
func TestScanOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SearchEngines = []string{"google"}
	cfg.SocialPlatforms = []string{"github"}
	cfg.PagesPerEngine = 4
	cfg.MaxDetailedResults = 9
	cfg.Concurrency = 3
	cfg.MaxScanDuration = time.Minute

	opts := scanOptions(cfg)
	if len(opts.SearchEngines) != 1 || opts.SearchEngines[0] != "google" {
		t.Errorf("expected engines [google], got %v", opts.SearchEngines)
	}
	if len(opts.SocialPlatforms) != 1 || opts.SocialPlatforms[0] != "github" {
		t.Errorf("expected platforms [github], got %v", opts.SocialPlatforms)
	}
	if opts.PagesPerEngine != 4 {
		t.Errorf("expected pages 4, got %d", opts.PagesPerEngine)
	}
	if opts.MaxDetailedResults != 9 {
		t.Errorf("expected max results 9, got %d", opts.MaxDetailedResults)
	}
	if opts.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", opts.Concurrency)
	}
	if opts.MaxScanDuration != time.Minute {
		t.Errorf("expected max duration 1m, got %v", opts.MaxScanDuration)
	}
}

// TestBuildRegistry tests that all providers are registered.
func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	registry := buildRegistry(config.NewConfig())

	for _, name := range []string{"google", "bing", "duckduckgo", "github", "reddit"} {
		if _, err := registry.Get(name); err != nil {
			t.Errorf("expected provider %q to be registered: %v", name, err)
		}
	}
}

// TestBuildFetcher tests fetcher construction.
func TestBuildFetcher(t *testing.T) {
	t.Parallel()

	t.Run("creates direct fetcher", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		fetcher, err := buildFetcher(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher == nil {
			t.Error("expected non-nil fetcher")
		}
	})

	t.Run("creates proxied fetcher", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.SOCKSProxyAddress = "127.0.0.1:1080"
		fetcher, err := buildFetcher(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher == nil {
			t.Error("expected non-nil fetcher")
		}
	})

	t.Run("returns error for invalid proxy address", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.SOCKSProxyAddress = "not-an-address"
		if _, err := buildFetcher(cfg); err == nil {
			t.Error("expected error for invalid proxy address")
		}
	})
}

// testScanReport builds a minimal report for output tests.
func testScanReport() *model.ScanReport {
	profile := model.Profile{model.AttributeName: "John Smith"}
	scanReport := model.NewScanReport(profile, model.ScanOptions{
		SearchEngines:  []string{"google"},
		PagesPerEngine: 3,
	})
	scanReport.ScanID = "0123456789abcdef0123456789abcdef"
	scanReport.Summary = model.NewSummary(nil)
	return scanReport
}

// TestOutputReport tests the report output functionality.
func TestOutputReport(t *testing.T) {
	t.Run("outputs JSON report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, testScanReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			t.Fatalf("failed to parse JSON: %v", err)
		}

		if result["scanId"] != "0123456789abcdef0123456789abcdef" {
			t.Errorf("expected scanId in output, got %v", result["scanId"])
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "subdir", "nested", "report.json")

		cfg := &config.Config{
			JSONReport: true,
			ReportFile: outputPath,
		}

		err := outputReport(cfg, testScanReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			t.Error("expected output file to be created in nested directory")
		}
	})

	t.Run("output file has secure permissions", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.txt")

		cfg := &config.Config{ReportFile: outputPath}

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})

	t.Run("outputs text report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.txt")

		cfg := &config.Config{ReportFile: outputPath}

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "EXPOSURE SCAN REPORT") {
			t.Error("expected report header in text output")
		}
	})

	t.Run("outputs markdown report to file", func(t *testing.T) {
		tmpDir := t.TempDir()
		outputPath := filepath.Join(tmpDir, "report.md")

		cfg := &config.Config{
			MarkdownReport: true,
			ReportFile:     outputPath,
		}

		if err := outputReport(cfg, testScanReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), "# Exposure Scan Report") {
			t.Error("expected markdown header in output")
		}
	})
}

// TestRunScanCmdConflictingFormats tests runScanCmd with both --json and --markdown.
func TestRunScanCmdConflictingFormats(t *testing.T) {
	chdirEmpty(t)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"scan", "--json", "--markdown", "--name", "John Smith"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for conflicting report formats")
	}
	if !errors.Is(err, config.ErrConflictingReportFormats) {
		t.Errorf("expected conflicting report formats error, got: %v", err)
	}
}

// TestRunScanCmdNoIdentity tests runScanCmd without any identity input.
func TestRunScanCmdNoIdentity(t *testing.T) {
	chdirEmpty(t)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs([]string{"scan"})

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("expected error for missing identity")
	}
	if !errors.Is(err, model.ErrEmptyProfile) {
		t.Errorf("expected empty profile error, got: %v", err)
	}
}
