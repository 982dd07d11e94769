// Package locator maps validation failures to approximate line numbers in the source text.
//
// Line numbers are a diagnostic convenience and are not guaranteed to be exact:
// the AST path lookup is precise when the source parses, the textual search can
// pick the wrong line when terms repeat, and the numeric estimate is a rough
// structural guess that only guarantees some line is always reported.
package locator

import (
	"strings"
)

// Spacing constants of the numeric estimate
const (
	// LinesPerZone is the assumed number of lines a zone occupies in a formatted file
	LinesPerZone = 15
	// LinesPerTier is the assumed number of lines a tier occupies in a formatted file
	LinesPerTier = 6
)

// FindLineNumber scans source line by line and returns the 1-based number of the
// first line containing search. When no line contains search and context is not
// empty, the first line containing context is returned instead.
func FindLineNumber(source, search, context string) (int, bool) {
	if search == "" && context == "" {
		return 0, false
	}

	contextLine := 0
	for i, line := range strings.Split(source, "\n") {
		if search != "" && strings.Contains(line, search) {
			return i + 1, true
		}
		if contextLine == 0 && context != "" && strings.Contains(line, context) {
			contextLine = i + 1
		}
	}

	if contextLine > 0 {
		return contextLine, true
	}
	return 0, false
}

// Estimate computes the deterministic fallback line for a zone-relative location
func Estimate(zoneIndex, offset, spIndex int) int {
	line := zoneIndex*LinesPerZone + offset + spIndex
	if line < 1 {
		return 1
	}
	return line
}

// Hint describes where a failure is expected to be in the source
type Hint struct {
	// Path is the JSON path (keys and decimal indices) of the offending node
	Path []string
	// Search and Context feed FindLineNumber when the path cannot be resolved
	Search  string
	Context string
	// Estimate is used when nothing else matches
	Estimate int
}

// Locator resolves hints against one source text
type Locator struct {
	source string
	paths  *PathLocator
}

// New creates a locator for source. The AST used for path lookups is parsed once.
func New(source string) *Locator {
	return &Locator{
		source: source,
		paths:  NewPathLocator(source),
	}
}

// Source returns the text the locator was built from
func (l *Locator) Source() string {
	return l.source
}

// Resolve returns the best line for hint: AST path, then textual search, then estimate
func (l *Locator) Resolve(hint Hint) int {
	if l == nil {
		return max(hint.Estimate, 1)
	}

	if len(hint.Path) > 0 {
		if line, ok := l.paths.Line(hint.Path); ok {
			return line
		}
	}

	if line, ok := FindLineNumber(l.source, hint.Search, hint.Context); ok {
		return line
	}

	return max(hint.Estimate, 1)
}
