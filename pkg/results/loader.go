// Package results loads raw scanner output files for analysis.
//
// Each file in the results directory is one scanner tool's output. The
// file's base name (without extension) becomes the source name; the
// content is carried verbatim. No scanner-specific parsing happens
// here — nmap, nikto, sqlmap output all flow through as opaque text.
package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoResultsDir indicates the scanner results directory does not exist
// or cannot be read. Callers should use errors.Is() to check for it.
var ErrNoResultsDir = errors.New("results: directory not found")

// Source is one scanner tool's raw output, identified by name.
type Source struct {
	Name    string
	Content string
}

// ScanResults holds loaded scanner outputs in deterministic (sorted by
// name) order. Immutable after Load returns.
type ScanResults struct {
	sources []Source
}

// Load reads every readable file in dir into a ScanResults set.
//
// Files are read in lexical order; when two files share a base name
// (e.g. nmap.md and nmap.txt), the lexically later file wins, keeping
// the collision policy deterministic. Hidden files and subdirectories
// are skipped. An existing-but-empty directory yields an empty set and
// no error; a missing directory yields ErrNoResultsDir.
func Load(dir string) (*ScanResults, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoResultsDir, dir)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNoResultsDir, dir, err)
	}

	byName := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("results: reading %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		byName[name] = string(data)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	sr := &ScanResults{sources: make([]Source, 0, len(names))}
	for _, name := range names {
		sr.sources = append(sr.sources, Source{Name: name, Content: byName[name]})
	}
	return sr, nil
}

// Len returns the number of loaded sources.
func (sr *ScanResults) Len() int {
	return len(sr.sources)
}

// Sources returns the loaded sources in name order. The returned slice
// must not be modified.
func (sr *ScanResults) Sources() []Source {
	return sr.sources
}

// Get returns the content for a source name.
func (sr *ScanResults) Get(name string) (string, bool) {
	for _, s := range sr.sources {
		if s.Name == name {
			return s.Content, true
		}
	}
	return "", false
}
