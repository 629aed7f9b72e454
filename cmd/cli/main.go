// Command cli generates an AI-assisted security assessment report from
// raw scanner output files.
//
// The pipeline is strictly sequential: load scanner results, compose
// the analysis prompt, call the analysis service, display the report,
// persist the markdown artifact, then render the PDF. Failures before
// the markdown artifact abort the run; a PDF failure only warns, since
// the markdown artifact already fully captures the report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/scanreport/scanreport/pkg/analysis"
	"github.com/scanreport/scanreport/pkg/compose"
	"github.com/scanreport/scanreport/pkg/config"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/output"
	"github.com/scanreport/scanreport/pkg/output/writers"
	"github.com/scanreport/scanreport/pkg/results"
	"github.com/scanreport/scanreport/pkg/retry"
	"github.com/scanreport/scanreport/pkg/ui"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseFlags(args)
	if err != nil {
		ui.PrintError(err.Error())
		return defaults.ExitUserError
	}
	ui.SetSilent(cfg.Silent)
	ui.SetNoColor(cfg.NoColor)
	ui.PrintBanner()

	if err := cfg.RequireCredential(); err != nil {
		ui.PrintError(fmt.Sprintf("%v (set %s before running)", err, config.APIKeyEnv))
		return defaults.ExitUserError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load scanner results.
	ui.PrintLoading("Loading scanner results from " + cfg.ResultsDir)
	scan, err := results.Load(cfg.ResultsDir)
	if err != nil {
		ui.PrintError("Error loading scanner results: " + err.Error())
		return defaults.ExitUserError
	}
	ui.PrintSuccess(fmt.Sprintf("Loaded %d scanner output files", scan.Len()))

	// Compose the analysis prompt.
	prompt, err := compose.Request(scan, compose.Options{})
	if err != nil {
		ui.PrintError("Error composing analysis request: " + err.Error())
		return defaults.ExitUserError
	}

	// Analyze.
	client := analysis.NewAnthropicClient(cfg.APIKey)
	client.Model = cfg.Model
	client.MaxTokens = cfg.MaxTokens
	client.SetTimeout(cfg.Timeout)
	if cfg.Retries > 0 {
		client.Retry = retry.Config{
			MaxAttempts: cfg.Retries + 1,
			InitDelay:   2 * time.Second,
			MaxDelay:    30 * time.Second,
			Strategy:    retry.Exponential,
			Jitter:      true,
		}
	}

	ui.PrintLoading("Analyzing vulnerabilities with " + cfg.Model)
	reportText, err := client.Analyze(ctx, prompt)
	if err != nil {
		ui.PrintError("Error during AI analysis: " + err.Error())
		if errors.Is(err, analysis.ErrMissingAPIKey) {
			return defaults.ExitUserError
		}
		return defaults.ExitNetworkError
	}
	ui.PrintSuccess("AI analysis complete")

	// Display in terminal.
	var term output.Renderer = &ui.TerminalRenderer{Out: os.Stdout, Summary: !cfg.NoSummary}
	if err := term.Render(reportText); err != nil {
		ui.PrintWarning("Terminal rendering degraded: " + err.Error())
	}

	// Persist the markdown artifact. This is the authoritative copy;
	// failure here is fatal.
	mdPath := filepath.Join(cfg.ReportsDir, defaults.MarkdownReport)
	ui.PrintLoading("Saving markdown report")
	md := &output.MarkdownRenderer{Path: mdPath}
	if err := md.Render(reportText); err != nil {
		ui.PrintError("Error saving markdown report: " + err.Error())
		return defaults.ExitInternalError
	}
	ui.PrintSuccess("Markdown report saved to " + mdPath)

	// Render the PDF. Non-fatal: the markdown artifact is complete.
	pdfPath := filepath.Join(cfg.ReportsDir, defaults.PDFReport)
	ui.PrintLoading("Generating PDF report")
	doc := &output.DocumentRenderer{
		Path: pdfPath,
		Config: writers.PDFConfig{
			Author:   "scanreport v" + ui.Version,
			ReportID: uuid.NewString()[:8],
		},
	}
	if err := doc.Render(reportText); err != nil {
		ui.PrintWarning("PDF generation failed: " + err.Error())
	} else {
		ui.PrintSuccess("PDF report saved to " + pdfPath)
	}

	ui.PrintSuccess("Report generation complete!")
	return defaults.ExitSuccess
}
