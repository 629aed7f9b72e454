// Package defaults centralizes CLI defaults and exit codes.
package defaults

import "time"

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Report generated, all artifacts written
	ExitUserError     = 2 // Invalid arguments, missing credential, or missing results directory
	ExitNetworkError  = 3 // Analysis service unreachable or returned an error
	ExitInternalError = 4 // Unexpected internal error (e.g. markdown artifact unwritable)
)

// Paths and filenames.
const (
	// ResultsDir is where scanner output files are read from.
	ResultsDir = "scanner_results"

	// ReportsDir is where generated artifacts are written.
	ReportsDir = "reports"

	// MarkdownReport is the verbatim markdown artifact filename.
	MarkdownReport = "security_report.md"

	// PDFReport is the paginated document artifact filename.
	PDFReport = "security_report.pdf"
)

// Analysis service defaults.
const (
	// AnalysisModel is the default model requested from the analysis service.
	AnalysisModel = "claude-sonnet-4-20250514"

	// AnalysisMaxTokens caps the analysis response length.
	AnalysisMaxTokens = 8000

	// AnalysisTimeout bounds the single analysis HTTP exchange.
	AnalysisTimeout = 120 * time.Second

	// MaxRequestBytes caps the composed prompt size. Prompts over this
	// limit are rejected, never truncated.
	MaxRequestBytes = 4 << 20 // 4 MiB
)

// SeverityOrder lists severity labels from most to least urgent.
// Used for deterministic table ordering in both renderers.
var SeverityOrder = []string{"Critical", "High", "Medium", "Low"}
