package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/fixes"
	"github.com/githubnext/spawncheck/pkg/report"
	"github.com/githubnext/spawncheck/pkg/schema"
	"github.com/githubnext/spawncheck/pkg/validator"
)

var (
	// ErrValidationFailed is returned when a document has validation issues. The
	// issues have already been printed.
	ErrValidationFailed = errors.New("validation failed")
	// ErrParseFailed is returned when a document is not valid JSON
	ErrParseFailed = errors.New("invalid JSON")
)

// Options controls how files are validated and reported
type Options struct {
	OutputDir string
	Apply     bool
	Strict    bool
	Verbose   bool
	// Out receives [SUCCESS]/[INFO] messages, Err receives diagnostics
	Out io.Writer
	Err io.Writer
	// Now stamps the fix report
	Now func() time.Time
}

func (o Options) stdout() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

func (o Options) stderr() io.Writer {
	if o.Err == nil {
		return os.Stderr
	}
	return o.Err
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// FileOutcome is the result of validating one file
type FileOutcome struct {
	Path   string
	Kind   schema.Kind
	Source string
	Result validator.Result
	// Actions are the automatic fixes, planned or applied depending on Options.Apply
	Actions []fixes.Action
	// Written is set when fix files were produced
	Written *report.Paths
}

// ValidateFile reads, parses and validates path without printing anything. An
// empty kind is inferred from the document's root keys. Fix
// files are written to opts.OutputDir when the document has issues. A parse
// failure is returned as an error wrapping both ErrParseFailed and the
// *document.ParseError; validation issues are not errors.
func ValidateFile(path string, kind schema.Kind, opts Options) (*FileOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file '%s' not found", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	if kind == "" {
		kind = InferKind(doc)
	}

	outcome := &FileOutcome{
		Path:   path,
		Kind:   kind,
		Source: string(data),
		Result: validator.Validate(kind, doc, string(data)),
	}

	if opts.Strict {
		unknown, err := validator.CheckUnknownFields(kind, doc, outcome.Source)
		if err != nil {
			return nil, fmt.Errorf("strict check of %s failed: %w", path, err)
		}
		outcome.Result.AddStrictIssues(unknown)
	}

	fixes.Enrich(&outcome.Result)

	if outcome.Result.Valid() {
		return outcome, nil
	}

	fixed, actions := fixes.Apply(doc, outcome.Result.Issues)
	outcome.Actions = actions
	if !opts.Apply {
		fixed = document.Clone(doc)
	}

	paths, err := report.WriteFixFiles(opts.OutputDir, report.FixSet{
		SourcePath: path,
		Kind:       kind,
		Result:     &outcome.Result,
		Fixed:      fixed,
		Actions:    actions,
		Applied:    opts.Apply,
		Generated:  opts.now(),
	})
	if err != nil {
		return nil, err
	}
	outcome.Written = &paths

	return outcome, nil
}

// InferKind guesses the document kind from its root keys
func InferKind(doc any) schema.Kind {
	root, _ := doc.(*document.Object)
	if root.Has(schema.TiersKey) && !root.Has(schema.ZonesKey) {
		return schema.KindTiers
	}
	return schema.KindZones
}

// RunValidate validates one file and prints the outcome. It returns
// ErrValidationFailed or ErrParseFailed after printing the details, and any other
// error unprinted.
func RunValidate(path string, kind schema.Kind, opts Options) error {
	out, errOut := opts.stdout(), opts.stderr()

	if opts.Verbose {
		fmt.Fprintln(out, console.FormatVerboseMessage(fmt.Sprintf("Validating %s configuration: %s", kind, path)))
	}

	outcome, err := ValidateFile(path, kind, opts)
	if err != nil {
		var parseErr *document.ParseError
		if errors.As(err, &parseErr) {
			printParseError(errOut, parseErr)
		}
		return err
	}

	printOutcome(out, errOut, outcome, opts)
	if !outcome.Result.Valid() {
		return ErrValidationFailed
	}
	return nil
}

func printParseError(w io.Writer, parseErr *document.ParseError) {
	fmt.Fprintln(w, console.FormatErrorMessage(fmt.Sprintf("Invalid JSON: %s", parseErr.Message)))
	if parseErr.HasOffset() {
		fmt.Fprintln(w, console.FormatErrorMessage(parseErr.OffsetHint()))
	}
}

func printOutcome(out, errOut io.Writer, outcome *FileOutcome, opts Options) {
	result := &outcome.Result
	if result.Valid() {
		fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("%s configuration is valid: %s", outcome.Kind, console.ToRelativePath(outcome.Path))))
		fmt.Fprintln(out, console.FormatInfoMessage(result.SummaryLine()))
		return
	}

	fmt.Fprintln(errOut, console.FormatErrorMessage(fmt.Sprintf("Found %d error(s) in %s", len(result.Issues), console.ToRelativePath(outcome.Path))))
	report.PrintIssues(errOut, outcome.Source, outcome.Path, result)

	if len(outcome.Actions) > 0 {
		if opts.Apply {
			fmt.Fprintln(out, console.FormatInfoMessage("Applied automatic fixes:"))
		} else {
			fmt.Fprintln(out, console.FormatInfoMessage("Automatic fixes (dry run, use --apply to write them):"))
		}
		for _, action := range outcome.Actions {
			fmt.Fprintln(out, console.FormatListItem(action.String()))
		}
	}

	if outcome.Written != nil {
		fmt.Fprintln(out, console.FormatLocationMessage(fmt.Sprintf("Fixed file: %s", console.ToRelativePath(outcome.Written.Fixed))))
		fmt.Fprintln(out, console.FormatLocationMessage(fmt.Sprintf("Fix report: %s", console.ToRelativePath(outcome.Written.Report))))
	}
}
