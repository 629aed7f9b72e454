package writers

import (
	"fmt"
	"io"
	"time"

	gofpdf "github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/scanreport/scanreport/pkg/report"
)

// pdfSeverityColors maps severity labels to RGB text colors.
// Unknown labels fall back to neutral gray.
var pdfSeverityColors = map[string][]int{
	"Critical": {220, 38, 38},
	"High":     {234, 88, 12},
	"Medium":   {202, 138, 4},
	"Low":      {22, 163, 74},
}

// PDFConfig configures the PDF report writer.
type PDFConfig struct {
	// Title is the report title shown on the title page
	// (default: "PENETRATION TESTING REPORT").
	Title string

	// Author is recorded in the document metadata.
	Author string

	// ReportID is stamped on the title page and every footer.
	ReportID string

	// GeneratedAt is the generation timestamp shown on the title page.
	// Zero means time.Now().
	GeneratedAt time.Time

	// PageSize sets the page format: "Letter" or "A4" (default: "Letter").
	PageSize string

	// Orientation sets "P" (portrait) or "L" (landscape) (default: "P").
	Orientation string
}

// PDFWriter builds a paginated document from structural report lines:
// a title page, distinct heading styles, and flowed body paragraphs.
// Content accumulates in memory; Close renders the finished document
// to the underlying writer.
type PDFWriter struct {
	w      io.Writer
	config PDFConfig
	pdf    *gofpdf.Fpdf
	tr     func(string) string

	// noCompress disables stream compression so tests can search the
	// raw bytes for text.
	noCompress bool
}

// NewPDFWriter creates a PDF writer targeting w.
func NewPDFWriter(w io.Writer, config PDFConfig) *PDFWriter {
	if config.Title == "" {
		config.Title = "PENETRATION TESTING REPORT"
	}
	if config.PageSize == "" {
		config.PageSize = "Letter"
	}
	if config.Orientation == "" {
		config.Orientation = "P"
	}
	if config.GeneratedAt.IsZero() {
		config.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New(config.Orientation, "mm", config.PageSize, "")
	pdf.SetTitle(config.Title, false)
	if config.Author != "" {
		pdf.SetAuthor(config.Author, false)
	}
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	pw := &PDFWriter{
		w:      w,
		config: config,
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footer := fmt.Sprintf("Page %d", pdf.PageNo())
		if config.ReportID != "" {
			footer = fmt.Sprintf("%s  |  Page %d", config.ReportID, pdf.PageNo())
		}
		pdf.CellFormat(0, 10, pw.tr(footer), "", 0, "C", false, 0, "")
	})

	return pw
}

// AddTitlePage writes the fixed title, generation timestamp, and report
// ID, then breaks to a fresh page for the report body.
func (pw *PDFWriter) AddTitlePage() {
	pw.pdf.AddPage()
	pw.pdf.Ln(60)

	pw.pdf.SetFont("Helvetica", "B", 24)
	pw.pdf.SetTextColor(26, 35, 126)
	pw.pdf.MultiCell(0, 12, pw.tr(pw.config.Title), "", "C", false)
	pw.pdf.Ln(10)

	pw.pdf.SetFont("Helvetica", "", 12)
	pw.pdf.SetTextColor(60, 60, 60)
	generated := "Generated: " + pw.config.GeneratedAt.Format("January 2, 2006")
	pw.pdf.MultiCell(0, 6, pw.tr(generated), "", "C", false)

	if pw.config.ReportID != "" {
		pw.pdf.Ln(4)
		pw.pdf.SetFont("Helvetica", "", 9)
		pw.pdf.SetTextColor(128, 128, 128)
		pw.pdf.MultiCell(0, 5, pw.tr("Report ID: "+pw.config.ReportID), "", "C", false)
	}

	pw.pdf.AddPage()
}

// WriteLine flows one structural line into the document. Headings get
// distinct styles with spacing after; body lines become paragraphs;
// blank lines are skipped so the document carries no empty paragraphs.
func (pw *PDFWriter) WriteLine(line report.Line) {
	switch line.Kind {
	case report.TitleHeading:
		pw.pdf.SetFont("Helvetica", "B", 18)
		pw.pdf.SetTextColor(26, 35, 126)
		pw.pdf.MultiCell(0, 9, pw.tr(line.Text), "", "L", false)
		pw.pdf.Ln(4)
	case report.SectionHeading:
		pw.pdf.SetFont("Helvetica", "B", 14)
		pw.pdf.SetTextColor(40, 53, 147)
		pw.pdf.MultiCell(0, 7, pw.tr(line.Text), "", "L", false)
		pw.pdf.Ln(3)
	case report.Body:
		pw.pdf.SetFont("Helvetica", "", 10)
		pw.pdf.SetTextColor(20, 20, 20)
		pw.pdf.MultiCell(0, 5, pw.tr(line.Text), "", "L", false)
		pw.pdf.Ln(2)
	case report.Blank:
		// No empty paragraph emitted.
	}
}

// AddSeverityTally appends a severity summary table on its own page:
// one row per label present in the tally, colored by severity, with
// the action each level demands.
func (pw *PDFWriter) AddSeverityTally(tally map[string]int) {
	pw.pdf.AddPage()

	pw.pdf.SetFont("Helvetica", "B", 14)
	pw.pdf.SetTextColor(40, 53, 147)
	pw.pdf.MultiCell(0, 7, "Severity Summary", "", "L", false)
	pw.pdf.Ln(3)

	titleCase := cases.Title(language.English)

	// Header row.
	pw.pdf.SetFont("Helvetica", "B", 10)
	pw.pdf.SetFillColor(30, 41, 59)
	pw.pdf.SetTextColor(255, 255, 255)
	pw.pdf.CellFormat(50, 8, "Severity", "1", 0, "L", true, 0, "")
	pw.pdf.CellFormat(30, 8, "Count", "1", 0, "C", true, 0, "")
	pw.pdf.CellFormat(0, 8, "Status", "1", 1, "L", true, 0, "")

	for _, label := range report.OrderedLabels(tally) {
		color := pdfSeverityColors[label]
		if color == nil {
			color = []int{128, 128, 128}
		}

		pw.pdf.SetFont("Helvetica", "B", 10)
		pw.pdf.SetTextColor(color[0], color[1], color[2])
		pw.pdf.CellFormat(50, 7, pw.tr(titleCase.String(label)), "1", 0, "L", false, 0, "")

		pw.pdf.SetFont("Helvetica", "", 10)
		pw.pdf.SetTextColor(60, 60, 60)
		pw.pdf.CellFormat(30, 7, fmt.Sprintf("%d", tally[label]), "1", 0, "C", false, 0, "")

		status := "Review"
		if report.RequiresAction(label) {
			status = "Requires Action"
		}
		pw.pdf.CellFormat(0, 7, status, "1", 1, "L", false, 0, "")
	}
}

// Close renders the accumulated document to the underlying writer.
func (pw *PDFWriter) Close() error {
	if pw.noCompress {
		pw.pdf.SetCompression(false)
	}
	if err := pw.pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if err := pw.pdf.Output(pw.w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}
