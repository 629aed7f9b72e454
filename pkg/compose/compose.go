// Package compose builds the analysis prompt from loaded scanner results.
package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/results"
)

// ErrRequestTooLarge indicates the composed prompt exceeds the analysis
// service request limit. Oversized prompts are rejected outright rather
// than silently truncated.
var ErrRequestTooLarge = errors.New("compose: request exceeds size limit")

// instructions is the fixed analysis template. The enumerated sections
// drive the structure of the returned report; both renderers depend on
// the service honoring the markdown heading convention requested here.
const instructions = `You are an expert penetration tester analyzing security scan results.

SCAN RESULTS:
%s

Please analyze these results and create a comprehensive security assessment report with:

1. EXECUTIVE SUMMARY
   - Brief overview of the security posture
   - Total number of vulnerabilities found
   - Risk rating (Critical/High/Medium/Low)

2. VULNERABILITY SUMMARY
   - List all vulnerabilities found
   - Categorize by severity (Critical, High, Medium, Low)
   - Include CVE numbers if applicable

3. DETAILED FINDINGS
   For each vulnerability:
   - Description of the issue
   - Affected component/service
   - Severity rating and justification
   - Proof of concept or evidence
   - Business impact

4. REMEDIATION RECOMMENDATIONS
   For each vulnerability:
   - Specific corrective actions
   - Priority order
   - Estimated effort (Low/Medium/High)
   - Prevention strategies

5. CONCLUSION
   - Overall security posture assessment
   - Priority vulnerabilities to address immediately
   - Long-term security recommendations

Format the report professionally with clear sections and markdown formatting.`

// Options tunes request composition.
type Options struct {
	// MaxBytes caps the composed prompt size. Zero means
	// defaults.MaxRequestBytes.
	MaxBytes int
}

// Request assembles the full analysis prompt: the fixed instruction
// template wrapping one labeled block per source, iterated in the
// loader's sorted order. Pure function of its inputs; with no sources
// the prompt still carries the complete instruction template.
func Request(sr *results.ScanResults, opts Options) (string, error) {
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaults.MaxRequestBytes
	}

	blocks := make([]string, 0, sr.Len())
	for _, src := range sr.Sources() {
		blocks = append(blocks, fmt.Sprintf("# %s Results\n%s", strings.ToUpper(src.Name), src.Content))
	}

	prompt := fmt.Sprintf(instructions, strings.Join(blocks, "\n\n"))
	if len(prompt) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrRequestTooLarge, len(prompt), maxBytes)
	}
	return prompt, nil
}
