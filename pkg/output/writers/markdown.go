// Package writers provides output writers for report artifacts.
package writers

import "io"

// MarkdownWriter writes the analysis report as a markdown document.
// The report already is markdown; the writer's single job is to copy
// it through byte-for-byte, with no reformatting of any kind.
type MarkdownWriter struct {
	w io.Writer
}

// NewMarkdownWriter creates a writer targeting w.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{w: w}
}

// WriteReport copies the report verbatim.
func (mw *MarkdownWriter) WriteReport(text string) error {
	_, err := io.WriteString(mw.w, text)
	return err
}
