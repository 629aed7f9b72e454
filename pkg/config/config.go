// Package config holds CLI configuration for the report generator.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// APIKeyEnv is the environment variable holding the analysis service
// credential. The credential is never accepted as a CLI flag.
const APIKeyEnv = "ANTHROPIC_API_KEY"

// Config holds all CLI configuration options.
type Config struct {
	// Input settings
	ResultsDir string // Directory of scanner output files

	// Output settings
	ReportsDir string // Directory for generated artifacts
	NoColor    bool   // Disable colored output
	Silent     bool   // Suppress status output (report still printed)
	NoSummary  bool   // Skip the severity summary table

	// Analysis settings
	Model     string        // Analysis service model
	MaxTokens int           // Response token cap
	Timeout   time.Duration // HTTP exchange timeout
	Retries   int           // Extra attempts on transient failure (0 = single attempt)

	// Credential, read from the environment only.
	APIKey string `yaml:"-"`
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	ResultsDir string `yaml:"results_dir"`
	ReportsDir string `yaml:"reports_dir"`
	Model      string `yaml:"model"`
	MaxTokens  int    `yaml:"max_tokens"`
	TimeoutSec int    `yaml:"timeout_sec"`
	Retries    int    `yaml:"retries"`
}

// ParseFlags parses command line arguments and the optional config
// file, returning the merged Config. Flags win over the file; the file
// wins over defaults.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("scanreport", flag.ContinueOnError)

	cfg := &Config{}
	var configFile string

	fs.StringVar(&cfg.ResultsDir, "results", "", "Scanner results directory")
	fs.StringVar(&cfg.ResultsDir, "r", "", "Scanner results directory (alias)")
	fs.StringVar(&cfg.ReportsDir, "out", "", "Output directory for report artifacts")
	fs.StringVar(&cfg.ReportsDir, "o", "", "Output directory (alias)")
	fs.StringVar(&cfg.Model, "model", "", "Analysis model")
	fs.IntVar(&cfg.MaxTokens, "max-tokens", 0, "Response token cap")
	timeout := fs.Int("timeout", 0, "Analysis timeout in seconds")
	fs.IntVar(&cfg.Retries, "retries", 0, "Extra attempts on transient analysis failure")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Silent, "silent", false, "Suppress status messages")
	fs.BoolVar(&cfg.NoSummary, "no-summary", false, "Skip the severity summary table")
	fs.StringVar(&configFile, "config", "", "Optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var fromFile fileConfig
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, configFile, err)
		}
	}

	// Merge: flag > file > default.
	cfg.ResultsDir = firstNonEmpty(cfg.ResultsDir, fromFile.ResultsDir, defaults.ResultsDir)
	cfg.ReportsDir = firstNonEmpty(cfg.ReportsDir, fromFile.ReportsDir, defaults.ReportsDir)
	cfg.Model = firstNonEmpty(cfg.Model, fromFile.Model, defaults.AnalysisModel)
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = fromFile.MaxTokens
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaults.AnalysisMaxTokens
	}
	switch {
	case *timeout > 0:
		cfg.Timeout = time.Duration(*timeout) * time.Second
	case fromFile.TimeoutSec > 0:
		cfg.Timeout = time.Duration(fromFile.TimeoutSec) * time.Second
	default:
		cfg.Timeout = defaults.AnalysisTimeout
	}
	if cfg.Retries == 0 {
		cfg.Retries = fromFile.Retries
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("%w: retries must be >= 0", ErrInvalidConfig)
	}

	cfg.APIKey = os.Getenv(APIKeyEnv)
	return cfg, nil
}

// RequireCredential fails when the analysis credential is absent. Run
// before any network call is attempted.
func (c *Config) RequireCredential() error {
	if c.APIKey == "" {
		return ErrMissingCredential
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
