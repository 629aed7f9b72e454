package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Version information - can be overridden at build time via ldflags:
// go build -ldflags "-X github.com/scanreport/scanreport/pkg/ui.Version=1.0.0"
var (
	Version   = "0.3.0"
	BuildDate = "2026-08-30"
	Commit    = "dev"
)

// Global UI state
var (
	silentMode  bool
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetSilent enables or disables silent mode (suppresses status output;
// the rendered report itself is always printed).
func SetSilent(silent bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	silentMode = silent
}

// IsSilent returns whether silent mode is enabled
func IsSilent() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return silentMode
}

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		// Use ASCII profile to disable colors
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// ASCII art banner
const bannerArt = `
   ______________ _____  ________  ____  ____  _____/ /_
  / ___/ ___/ __ '/ __ \/ ___/ _ \/ __ \/ __ \/ ___/ __/
 (__  ) /__/ /_/ / / / / /  /  __/ /_/ / /_/ / /  / /_
/____/\___/\__,_/_/ /_/_/   \___/ .___/\____/_/   \__/
                               /_/                      `

// PrintBanner prints the application banner with version info to stderr.
func PrintBanner() {
	if IsSilent() {
		return
	}
	for _, line := range strings.Split(bannerArt, "\n") {
		if line != "" {
			fmt.Fprintln(os.Stderr, BannerStyle.Render(line))
		}
	}
	fmt.Fprintf(os.Stderr, "\n        AI-powered security assessment reports  %s\n\n", VersionStyle.Render("v"+Version))
}

// PrintSection prints a section header to stderr.
func PrintSection(title string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, SectionStyle.Render(title))
}

// PrintLoading prints an in-progress status line (to stderr)
func PrintLoading(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s...\n", InfoStyle.Render(Icon("⚙", "*")), message)
}

// PrintSuccess prints a success message (to stderr)
func PrintSuccess(message string) {
	if IsSilent() {
		return
	}
	fmt.Fprintln(os.Stderr, SuccessStyle.Render("  "+Icon("✓", "[+]")+" "+message))
}

// PrintError prints an error message (to stderr)
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, FailStyle.Render("  "+Icon("✗", "[X]")+" "+message))
}

// PrintWarning prints a warning message (to stderr)
func PrintWarning(message string) {
	fmt.Fprintln(os.Stderr, WarningStyle.Render("  "+Icon("!", "[!]")+" "+message))
}
