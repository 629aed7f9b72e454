package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanreport/scanreport/pkg/defaults"
)

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")

	cfg, err := ParseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, defaults.ResultsDir, cfg.ResultsDir)
	assert.Equal(t, defaults.ReportsDir, cfg.ReportsDir)
	assert.Equal(t, defaults.AnalysisModel, cfg.Model)
	assert.Equal(t, defaults.AnalysisMaxTokens, cfg.MaxTokens)
	assert.Equal(t, defaults.AnalysisTimeout, cfg.Timeout)
	assert.Equal(t, 0, cfg.Retries)
	assert.Equal(t, "sk-test", cfg.APIKey)
}

func TestParseFlags_FlagsOverrideDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")

	cfg, err := ParseFlags([]string{
		"-results", "out/scans",
		"-o", "out/reports",
		"-model", "claude-opus-4-20250514",
		"-timeout", "30",
		"-retries", "2",
	})
	require.NoError(t, err)

	assert.Equal(t, "out/scans", cfg.ResultsDir)
	assert.Equal(t, "out/reports", cfg.ReportsDir)
	assert.Equal(t, "claude-opus-4-20250514", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2, cfg.Retries)
}

func TestParseFlags_ConfigFileMergesUnderFlags(t *testing.T) {
	t.Setenv(APIKeyEnv, "sk-test")

	path := filepath.Join(t.TempDir(), "scanreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"results_dir: from-file\nmodel: file-model\nmax_tokens: 2000\ntimeout_sec: 45\n",
	), 0o644))

	cfg, err := ParseFlags([]string{"-config", path, "-model", "flag-model"})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.ResultsDir, "file beats default")
	assert.Equal(t, "flag-model", cfg.Model, "flag beats file")
	assert.Equal(t, 2000, cfg.MaxTokens)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestParseFlags_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))

	_, err := ParseFlags([]string{"-config", path})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseFlags_NegativeRetries(t *testing.T) {
	_, err := ParseFlags([]string{"-retries", "-1"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRequireCredential(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	cfg, err := ParseFlags(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.RequireCredential(), ErrMissingCredential)

	cfg.APIKey = "sk-test"
	assert.NoError(t, cfg.RequireCredential())
}
