// Package report classifies AI-generated report text into structural
// lines for document rendering, and derives severity tallies for the
// terminal summary table.
package report

import "strings"

// LineKind classifies one line of the analysis report.
type LineKind int

const (
	// Body is any line that is not a heading and not blank. Markdown
	// constructs other than headings (tables, lists, emphasis) are not
	// structurally interpreted; they flow through as Body verbatim.
	Body LineKind = iota
	// TitleHeading is a line starting with exactly one '#' and a space.
	TitleHeading
	// SectionHeading is a line starting with exactly two '#' and a space.
	SectionHeading
	// Blank is an empty or whitespace-only line.
	Blank
)

// String returns the kind name for logs and test failures.
func (k LineKind) String() string {
	switch k {
	case TitleHeading:
		return "TitleHeading"
	case SectionHeading:
		return "SectionHeading"
	case Blank:
		return "Blank"
	default:
		return "Body"
	}
}

// Line is one classified line of the report. Text has the heading
// markers stripped for heading kinds and is verbatim for Body.
type Line struct {
	Kind LineKind
	Text string
}

// Classify maps a single raw line to its structural form. Pure and
// total: classification depends only on the line's leading marker
// tokens, never on surrounding lines. Three or more '#' markers, or
// markers without a trailing space, are not headings and fall through
// to Body.
func Classify(raw string) Line {
	switch {
	case strings.HasPrefix(raw, "# "):
		return Line{Kind: TitleHeading, Text: raw[2:]}
	case strings.HasPrefix(raw, "## ") && !strings.HasPrefix(raw, "### "):
		return Line{Kind: SectionHeading, Text: raw[3:]}
	case strings.TrimSpace(raw) == "":
		return Line{Kind: Blank, Text: ""}
	default:
		return Line{Kind: Body, Text: raw}
	}
}

// Scanner walks a report one line at a time, classifying as it goes.
// It is lazy and non-restartable, in the manner of bufio.Scanner:
//
//	s := report.NewScanner(text)
//	for s.Scan() {
//	    line := s.Line()
//	    ...
//	}
//
// Every input line yields exactly one Line, in input order. A report
// ending in a newline yields a final Blank for the empty last segment,
// so re-joining Line texts (with markers re-added) reconstructs the
// input exactly, up to one normalization: Blank lines always carry an
// empty Text, so a whitespace-only input line rebuilds as empty.
type Scanner struct {
	rest string
	line Line
	done bool
}

// NewScanner returns a Scanner positioned before the first line.
func NewScanner(text string) *Scanner {
	return &Scanner{rest: text}
}

// Scan advances to the next line, returning false after the last one.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	raw, rest, found := strings.Cut(s.rest, "\n")
	s.rest = rest
	if !found {
		s.done = true
	}
	s.line = Classify(strings.TrimSuffix(raw, "\r"))
	return true
}

// Line returns the line classified by the last call to Scan.
func (s *Scanner) Line() Line {
	return s.line
}
