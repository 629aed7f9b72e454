package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/scanreport/scanreport/pkg/report"
)

// reportWrap is the word-wrap column for terminal report rendering.
const reportWrap = 100

// TerminalRenderer renders the analysis report as styled rich text on a
// terminal. Markdown interpretation is delegated wholesale to glamour;
// the structural parser is not involved. When styling is unavailable
// (piped output, renderer failure) it degrades to plain text rather
// than aborting the run.
type TerminalRenderer struct {
	Out     io.Writer
	Summary bool // also render the severity summary table
}

// Render displays the full report inside a titled panel, then the
// optional severity summary table. Always succeeds: every styling
// failure falls back to plain output.
func (tr *TerminalRenderer) Render(text string) error {
	fmt.Fprintln(tr.Out)
	fmt.Fprintln(tr.Out, PanelStyle.Render(PanelTitleStyle.Render("SECURITY ASSESSMENT REPORT")))
	fmt.Fprintln(tr.Out)

	fmt.Fprintln(tr.Out, renderMarkdown(text))

	if tr.Summary {
		if tally := report.Tally(text); len(tally) > 0 {
			tr.renderSummaryTable(tally)
		}
	}
	return nil
}

// renderMarkdown styles markdown for the terminal, or returns the text
// unchanged when styling is impossible.
func renderMarkdown(text string) string {
	if IsNoColor() || !StdoutIsTerminal() {
		return text
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(reportWrap),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// renderSummaryTable prints one row per severity present in the tally,
// most urgent first, annotated with the action each level demands.
func (tr *TerminalRenderer) renderSummaryTable(tally map[string]int) {
	fmt.Fprintln(tr.Out)
	fmt.Fprintln(tr.Out, SectionStyle.Render("Vulnerability Summary"))
	fmt.Fprintln(tr.Out)

	// Pad plain strings before styling; ANSI escapes break %-12s widths.
	pad := func(s string, w int) string {
		if len(s) >= w {
			return s
		}
		return s + strings.Repeat(" ", w-len(s))
	}

	fmt.Fprintf(tr.Out, "  %s %s  %s\n",
		TableHeaderStyle.Render(pad("Severity", 12)),
		TableHeaderStyle.Render(pad("Count", 6)),
		TableHeaderStyle.Render("Status"),
	)
	fmt.Fprintf(tr.Out, "  %s\n", StatLabelStyle.Render(strings.Repeat("-", 42)))

	for _, label := range report.OrderedLabels(tally) {
		status := ReviewStyle.Render(Icon("📋", "[ ]") + " Review")
		if report.RequiresAction(label) {
			status = ActionStyle.Render(Icon("⚠", "[!]") + " Requires Action")
		}
		fmt.Fprintf(tr.Out, "  %s %s  %s\n",
			SeverityStyle(label).Render(pad(label, 10)),
			StatValueStyle.Render(pad(fmt.Sprintf("%d", tally[label]), 6)),
			status,
		)
	}
	fmt.Fprintln(tr.Out)
}
