package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultScanFile is the default scan profile file name.
const DefaultScanFile = ".exposurescan"

// ErrScanFileNotFound is returned when the scan profile file does not exist.
var ErrScanFileNotFound = errors.New("scan profile file not found")

// ScanFile is the YAML scan profile: the identity to search for plus
// per-scan option overrides. Keeping the identity in a file avoids typing
// PII into shell history.
//
// Example:
//
//	identity:
//	  name: "John Smith"
//	  email: "john.smith@example.com"
//	options:
//	  searchEngines: [google, bing]
//	  socialPlatforms: [github, reddit]
//	  pagesPerEngine: 3
//	  maxDetailedResults: 20
//	proxy: "127.0.0.1:1080"
type ScanFile struct {
	// Identity maps attribute names (name, email, phone, address) to values.
	Identity map[string]string `yaml:"identity"`

	// Options holds per-scan option overrides. Zero values mean "use the
	// configured default".
	Options ScanFileOptions `yaml:"options"`

	// Proxy is an optional SOCKS5 proxy address in "host:port" form.
	Proxy string `yaml:"proxy"`
}

// ScanFileOptions mirrors the option subset that may be set from the file.
type ScanFileOptions struct {
	SearchEngines      []string      `yaml:"searchEngines"`
	SocialPlatforms    []string      `yaml:"socialPlatforms"`
	PagesPerEngine     int           `yaml:"pagesPerEngine"`
	MaxDetailedResults int           `yaml:"maxDetailedResults"`
	Concurrency        int           `yaml:"concurrency"`
	MaxScanDuration    time.Duration `yaml:"maxScanDuration"`
}

// LoadScanFile loads a scan profile from a YAML file.
// If the file does not exist, it returns ErrScanFileNotFound. Callers
// decide whether that is fatal based on whether the path was explicit.
func LoadScanFile(path string) (*ScanFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided scan file path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScanFileNotFound
		}
		return nil, err
	}

	var sf ScanFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}

	if sf.Identity == nil {
		sf.Identity = make(map[string]string)
	}

	return &sf, nil
}

// Apply copies the scan file's non-zero overrides onto the config.
func (sf *ScanFile) Apply(cfg *Config) {
	if len(sf.Options.SearchEngines) > 0 {
		cfg.SearchEngines = sf.Options.SearchEngines
	}
	if len(sf.Options.SocialPlatforms) > 0 {
		cfg.SocialPlatforms = sf.Options.SocialPlatforms
	}
	if sf.Options.PagesPerEngine > 0 {
		cfg.PagesPerEngine = sf.Options.PagesPerEngine
	}
	if sf.Options.MaxDetailedResults > 0 {
		cfg.MaxDetailedResults = sf.Options.MaxDetailedResults
	}
	if sf.Options.Concurrency > 0 {
		cfg.Concurrency = sf.Options.Concurrency
	}
	if sf.Options.MaxScanDuration > 0 {
		cfg.MaxScanDuration = sf.Options.MaxScanDuration
	}
	if sf.Proxy != "" {
		cfg.SOCKSProxyAddress = sf.Proxy
	}
}

// FindScanFile searches for the scan profile file in the following order:
// 1. If scanPath is specified, use it directly
// 2. Look for .exposurescan in the current directory
// 3. Look for .exposurescan in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindScanFile(scanPath string) string {
	if scanPath != "" {
		if _, err := os.Stat(scanPath); err == nil {
			return scanPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdFile := filepath.Join(cwd, DefaultScanFile)
		if _, err := os.Stat(cwdFile); err == nil {
			return cwdFile
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeFile := filepath.Join(home, DefaultScanFile)
		if _, err := os.Stat(homeFile); err == nil {
			return homeFile
		}
	}

	return ""
}
