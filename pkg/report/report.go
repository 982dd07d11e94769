// Package report renders validation results to the console and writes the fix files.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/constants"
	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/fixes"
	"github.com/githubnext/spawncheck/pkg/schema"
	"github.com/githubnext/spawncheck/pkg/validator"
)

// contextRadius is the number of source lines shown around an error
const contextRadius = 2

// PrintIssues renders every issue of result as a diagnostic
func PrintIssues(w io.Writer, source, path string, result *validator.Result) {
	for i, issue := range result.Issues {
		var hints []string
		if i < len(result.Fixes) {
			hints = result.Fixes[i].Suggestions
		}

		context, start := console.SourceContext(source, issue.Line, contextRadius)
		fmt.Fprint(w, console.FormatError(console.Diagnostic{
			Position: console.Position{
				File:   path,
				Line:   issue.Line,
				Column: firstColumn(source, issue.Line),
			},
			Type:         "error",
			Message:      issue.Message(),
			Label:        issue.Label,
			Context:      context,
			ContextStart: start,
			Hints:        hints,
		}))
	}
}

// firstColumn returns the 1-based column of the first non-blank character of line
func firstColumn(source string, line int) int {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return 0
	}
	text := lines[line-1]
	trimmed := strings.TrimLeft(text, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return 0
	}
	return len(text) - len(trimmed) + 1
}

// FixSet is everything written for one validated file
type FixSet struct {
	SourcePath string
	Kind       schema.Kind
	Result     *validator.Result
	// Fixed is the document written to the _FIXED.json file
	Fixed   any
	Actions []fixes.Action
	// Applied is false for a dry run, where Actions were only planned
	Applied   bool
	Generated time.Time
}

// Paths are the files written by WriteFixFiles
type Paths struct {
	Fixed  string
	Report string
}

// baseName strips the directory and extension of path
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteFixFiles writes <base>_FIXED.json and <base>_FIX_REPORT.txt into dir
func WriteFixFiles(dir string, set FixSet) (Paths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	base := baseName(set.SourcePath)
	paths := Paths{
		Fixed:  filepath.Join(dir, base+constants.FixedFileSuffix),
		Report: filepath.Join(dir, base+constants.ReportFileSuffix),
	}

	fixed, err := document.MarshalIndent(set.Fixed, "    ")
	if err != nil {
		return Paths{}, fmt.Errorf("failed to encode fixed document: %w", err)
	}
	if err := os.WriteFile(paths.Fixed, fixed, 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write %s: %w", paths.Fixed, err)
	}

	if err := os.WriteFile(paths.Report, []byte(FormatReport(set)), 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write %s: %w", paths.Report, err)
	}

	return paths, nil
}

// FormatReport renders the plain-text fix report
func FormatReport(set FixSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Fix report for %s\n", filepath.Base(set.SourcePath))
	fmt.Fprintf(&b, "Generated: %s\n", set.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Type: %s\n", set.Kind)

	var fixList []validator.FixRecord
	if set.Result != nil {
		fixList = set.Result.Fixes
	}
	fmt.Fprintf(&b, "Errors: %d\n", len(fixList))
	b.WriteString(strings.Repeat("=", 60))
	b.WriteString("\n")

	for i, fix := range fixList {
		fmt.Fprintf(&b, "\n%d. [%s] line %d\n", i+1, fix.Zone, fix.Line)
		fmt.Fprintf(&b, "   Error: %s\n", fix.Error)
		for _, suggestion := range fix.Suggestions {
			fmt.Fprintf(&b, "   Suggestion: %s\n", suggestion)
		}
	}

	if len(set.Actions) > 0 {
		mode := "dry run, nothing changed"
		if set.Applied {
			mode = "applied to the fixed file"
		}
		fmt.Fprintf(&b, "\nAutomatic fixes (%s):\n", mode)
		for _, action := range set.Actions {
			fmt.Fprintf(&b, "  - %s\n", action)
		}
	}

	return b.String()
}
