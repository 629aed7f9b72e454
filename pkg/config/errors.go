package config

import "errors"

// Sentinel errors for configuration failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidConfig indicates the configuration is syntactically
	// or semantically invalid (bad YAML, conflicting options, etc.).
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrMissingCredential indicates the analysis service credential
	// was not found in the environment.
	ErrMissingCredential = errors.New("config: missing ANTHROPIC_API_KEY")
)
