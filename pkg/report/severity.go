package report

import (
	"regexp"
	"sort"
	"strings"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// Severity label extraction. The analysis service emits free text, so
// tallying is heuristic: a finding counts once per line that names a
// severity in one of the shapes the requested report format produces,
// e.g. "Severity: High", "**Severity**: Critical", or a bullet like
// "- **Critical**: SQL injection in login form". The label itself is
// an open word class so non-standard labels ("Informational",
// "Severe") still land in the tally under their own name.
var (
	severityFieldRe  = regexp.MustCompile(`(?i)severity\**\s*[:\-]\s*\**\s*([A-Za-z]+)\b`)
	severityBulletRe = regexp.MustCompile(`^\s*[-*]\s+\*\*([A-Za-z]+)\*\*\s*[:(]`)
)

// Tally counts findings per severity label across the report. Labels
// are canonicalized to title case. Lines naming no severity contribute
// nothing; a report with no recognizable findings yields an empty map.
func Tally(text string) map[string]int {
	tally := make(map[string]int)
	s := NewScanner(text)
	for s.Scan() {
		line := s.Line()
		if line.Kind != Body {
			continue
		}
		if m := severityFieldRe.FindStringSubmatch(line.Text); m != nil {
			tally[canonicalSeverity(m[1])]++
			continue
		}
		if m := severityBulletRe.FindStringSubmatch(line.Text); m != nil {
			tally[canonicalSeverity(m[1])]++
		}
	}
	return tally
}

func canonicalSeverity(label string) string {
	lower := strings.ToLower(label)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// RequiresAction reports whether a severity label demands immediate
// remediation. Unknown labels do not.
func RequiresAction(label string) bool {
	return strings.EqualFold(label, "Critical") || strings.EqualFold(label, "High")
}

// OrderedLabels returns the tally's labels in fixed severity order,
// with unrecognized labels appended alphabetically at the end. This
// keeps table rendering deterministic regardless of map iteration.
func OrderedLabels(tally map[string]int) []string {
	known := make(map[string]bool, len(defaults.SeverityOrder))
	var out []string
	for _, label := range defaults.SeverityOrder {
		known[label] = true
		if _, ok := tally[label]; ok {
			out = append(out, label)
		}
	}
	var extra []string
	for label := range tally {
		if !known[label] {
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
