// Package output persists report artifacts and defines the renderer
// contract shared by the terminal and document presentation paths.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scanreport/scanreport/pkg/output/writers"
	"github.com/scanreport/scanreport/pkg/report"
)

// ErrRender indicates an artifact could not be produced (unwritable
// path or renderer-internal failure). Callers should use errors.Is().
var ErrRender = errors.New("output: render failed")

// Renderer consumes an analysis report and produces one presentation
// of it — a styled terminal view or a persisted artifact. The report
// is read-only; no renderer may modify it.
type Renderer interface {
	Render(text string) error
}

// Compile-time interface checks.
var (
	_ Renderer = (*MarkdownRenderer)(nil)
	_ Renderer = (*DocumentRenderer)(nil)
)

// MarkdownRenderer persists the report verbatim. The written file is
// always byte-identical to the analysis report; it is the
// authoritative artifact when document rendering fails.
type MarkdownRenderer struct {
	Path string
}

// Render writes the report to the configured path, creating parent
// directories as needed.
func (mr *MarkdownRenderer) Render(text string) error {
	if err := os.MkdirAll(filepath.Dir(mr.Path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	f, err := os.Create(mr.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer f.Close()

	w := writers.NewMarkdownWriter(f)
	if err := w.WriteReport(text); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// DocumentRenderer builds the paginated PDF artifact from the
// structural line stream. Failures leave the in-memory report and the
// markdown artifact untouched; the pipeline treats them as warnings.
type DocumentRenderer struct {
	Path   string
	Config writers.PDFConfig
}

// Render parses the report into structural lines and flows them into
// the PDF writer: title page, heading styles, body paragraphs, and a
// closing severity tally table when the report names any findings.
func (dr *DocumentRenderer) Render(text string) error {
	if err := os.MkdirAll(filepath.Dir(dr.Path), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	f, err := os.Create(dr.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer f.Close()

	w := writers.NewPDFWriter(f, dr.Config)
	w.AddTitlePage()

	s := report.NewScanner(text)
	for s.Scan() {
		w.WriteLine(s.Line())
	}

	if tally := report.Tally(text); len(tally) > 0 {
		w.AddSeverityTally(tally)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}
