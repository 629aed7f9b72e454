package report

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind LineKind
		wantText string
	}{
		{"title heading", "# EXECUTIVE SUMMARY", TitleHeading, "EXECUTIVE SUMMARY"},
		{"section heading", "## Findings", SectionHeading, "Findings"},
		{"body", "The target exposes SSH on port 22.", Body, "The target exposes SSH on port 22."},
		{"empty", "", Blank, ""},
		{"whitespace only", "   \t", Blank, ""},
		{"triple marker is body", "### Sub-finding", Body, "### Sub-finding"},
		{"marker without space is body", "#hashtag", Body, "#hashtag"},
		{"double marker without space is body", "##fast", Body, "##fast"},
		{"list item is body", "- **Critical**: SQLi in login", Body, "- **Critical**: SQLi in login"},
		{"table row is body", "| Severity | Count |", Body, "| Severity | Count |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw)
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestScanner_OneLinePerInputLineInOrder(t *testing.T) {
	text := "# EXECUTIVE SUMMARY\n\nOverall posture is weak.\n## Findings\nSQL injection found."

	var kinds []LineKind
	s := NewScanner(text)
	for s.Scan() {
		kinds = append(kinds, s.Line().Kind)
	}

	want := []LineKind{TitleHeading, Blank, Body, SectionHeading, Body}
	if len(kinds) != len(want) {
		t.Fatalf("got %d lines, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("line %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

// Re-adding the stripped markers and re-joining must reconstruct the
// input line-for-line.
func TestScanner_Reconstruction(t *testing.T) {
	text := "# PENETRATION TEST REPORT\n\n## Executive Summary\nWeak posture overall.\n\n### Not a section\n- bullet\n\n## Conclusion\nFix everything.\n"

	var rebuilt []string
	s := NewScanner(text)
	for s.Scan() {
		line := s.Line()
		switch line.Kind {
		case TitleHeading:
			rebuilt = append(rebuilt, "# "+line.Text)
		case SectionHeading:
			rebuilt = append(rebuilt, "## "+line.Text)
		default:
			rebuilt = append(rebuilt, line.Text)
		}
	}

	if got := strings.Join(rebuilt, "\n"); got != text {
		t.Errorf("reconstruction mismatch:\ngot:  %q\nwant: %q", got, text)
	}
}

// Blank lines never carry text, so rebuilding a report normalizes a
// whitespace-only line to empty. That is the one deliberate loss in
// the reconstruction guarantee.
func TestScanner_WhitespaceOnlyLinesRebuildEmpty(t *testing.T) {
	var rebuilt []string
	s := NewScanner("before\n   \t\nafter\n")
	for s.Scan() {
		rebuilt = append(rebuilt, s.Line().Text)
	}

	if got := strings.Join(rebuilt, "\n"); got != "before\n\nafter\n" {
		t.Errorf("rebuilt = %q, want %q", got, "before\n\nafter\n")
	}
}

func TestScanner_ExhaustedStaysExhausted(t *testing.T) {
	s := NewScanner("only line")
	if !s.Scan() {
		t.Fatal("expected first Scan to succeed")
	}
	if s.Scan() {
		t.Error("expected Scan to report exhaustion")
	}
	if s.Scan() {
		t.Error("scanner must not restart")
	}
}

func TestScanner_EmptyInputYieldsSingleBlank(t *testing.T) {
	s := NewScanner("")
	if !s.Scan() {
		t.Fatal("expected one line for empty input")
	}
	if got := s.Line().Kind; got != Blank {
		t.Errorf("kind = %v, want Blank", got)
	}
	if s.Scan() {
		t.Error("expected exhaustion after single line")
	}
}
