package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfigDefaults tests that defaults are populated.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.MaxRetries != DefaultMaxRetries {
		t.Errorf("expected max retries %d, got %d", DefaultMaxRetries, cfg.MaxRetries)
	}
	if len(cfg.UserAgents) == 0 {
		t.Error("expected non-empty user-agent pool")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

// TestConfigValidate tests validation error cases.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "zero pages per engine",
			mutate:  func(c *Config) { c.PagesPerEngine = 0 },
			wantErr: ErrInvalidPagesPerEngine,
		},
		{
			name:    "zero max detailed results",
			mutate:  func(c *Config) { c.MaxDetailedResults = 0 },
			wantErr: ErrInvalidMaxDetailedResults,
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.MaxRetries = -1 },
			wantErr: ErrInvalidMaxRetries,
		},
		{
			name:    "negative page delay",
			mutate:  func(c *Config) { c.PageDelay = -time.Second },
			wantErr: ErrInvalidPageDelay,
		},
		{
			name:    "negative body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "empty user-agent pool",
			mutate:  func(c *Config) { c.UserAgents = nil },
			wantErr: ErrNoUserAgents,
		},
		{
			name:    "conflicting report formats",
			mutate:  func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestUserAgentFor tests deterministic rotation through the pool.
func TestUserAgentFor(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.UserAgents = []string{"ua-a", "ua-b", "ua-c"}

	if got := cfg.UserAgentFor(0); got != "ua-a" {
		t.Errorf("expected ua-a, got %q", got)
	}
	if got := cfg.UserAgentFor(4); got != "ua-b" {
		t.Errorf("expected ua-b, got %q", got)
	}
	if got := cfg.UserAgentFor(-2); got != "ua-c" {
		t.Errorf("expected ua-c for negative counter, got %q", got)
	}

	empty := &Config{}
	if got := empty.UserAgentFor(1); got != "" {
		t.Errorf("expected empty string for empty pool, got %q", got)
	}
}

// TestLoadScanFile tests scan profile loading and override application.
func TestLoadScanFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadScanFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrScanFileNotFound) {
			t.Errorf("expected ErrScanFileNotFound, got %v", err)
		}
	})

	t.Run("loads identity and options", func(t *testing.T) {
		t.Parallel()

		content := `
identity:
  name: "John Smith"
  email: "john@example.com"
options:
  searchEngines: [duckduckgo]
  pagesPerEngine: 5
proxy: "127.0.0.1:1080"
`
		path := filepath.Join(t.TempDir(), DefaultScanFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		sf, err := LoadScanFile(path)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if sf.Identity["name"] != "John Smith" {
			t.Errorf("expected name John Smith, got %q", sf.Identity["name"])
		}

		cfg := NewConfig()
		sf.Apply(cfg)

		if len(cfg.SearchEngines) != 1 || cfg.SearchEngines[0] != "duckduckgo" {
			t.Errorf("expected [duckduckgo], got %v", cfg.SearchEngines)
		}
		if cfg.PagesPerEngine != 5 {
			t.Errorf("expected 5 pages per engine, got %d", cfg.PagesPerEngine)
		}
		if cfg.SOCKSProxyAddress != "127.0.0.1:1080" {
			t.Errorf("expected proxy applied, got %q", cfg.SOCKSProxyAddress)
		}
		// Untouched options keep their defaults.
		if cfg.MaxDetailedResults != DefaultMaxDetailedResults {
			t.Errorf("expected default max detailed results, got %d", cfg.MaxDetailedResults)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultScanFile)
		if err := os.WriteFile(path, []byte("identity: [not a map"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadScanFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
