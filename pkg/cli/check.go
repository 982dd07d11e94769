package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync/atomic"

	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/constants"
	"github.com/githubnext/spawncheck/pkg/document"
	"github.com/githubnext/spawncheck/pkg/report"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

// CheckResult is the outcome of one file of a directory check
type CheckResult struct {
	Path    string
	Outcome *FileOutcome
	Err     error
}

// Failed reports whether the file did not pass
func (r CheckResult) Failed() bool {
	return r.Err != nil || r.Outcome == nil || !r.Outcome.Result.Valid()
}

// CheckDirectory validates every *.json file in dir concurrently, inferring the
// kind of each file from its root keys. Results are ordered by file name.
func CheckDirectory(dir string, opts Options, concurrency int) ([]CheckResult, error) {
	return checkDirectory(dir, opts, concurrency, nil)
}

// checkDirectory is CheckDirectory with a progress callback, called from the
// worker goroutines after each file
func checkDirectory(dir string, opts Options, concurrency int, progress func(done, total int)) ([]CheckResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory '%s' not found", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to find JSON files: %w", err)
	}
	if len(files) == 0 {
		return []CheckResult{}, nil
	}

	if concurrency < 1 {
		concurrency = constants.MaxConcurrentChecks
	}

	// Use conc pool for controlled concurrency with results
	var checked atomic.Int64
	p := pool.NewWithResults[CheckResult]().WithMaxGoroutines(concurrency)
	for _, file := range files {
		p.Go(func() CheckResult {
			outcome, err := ValidateFile(file, "", opts)
			if progress != nil {
				progress(int(checked.Add(1)), len(files))
			}
			return CheckResult{Path: file, Outcome: outcome, Err: err}
		})
	}
	results := p.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
	return results, nil
}

// RunCheck validates a directory and prints each failure followed by a summary table
func RunCheck(dir string, opts Options, concurrency int) error {
	out, errOut := opts.stdout(), opts.stderr()

	spinner := console.NewSpinner(fmt.Sprintf("Checking configurations in %s...", dir), opts.Verbose)
	spinner.Start()
	results, err := checkDirectory(dir, opts, concurrency, func(done, total int) {
		spinner.UpdateMessage(fmt.Sprintf("Checked %d/%d files in %s...", done, total, dir))
	})
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(out, console.FormatWarningMessage(fmt.Sprintf("No JSON files found in %s", dir)))
		return nil
	}

	failed := 0
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			failed++
		}
		rows = append(rows, checkRow(r))

		switch {
		case r.Err != nil:
			var parseErr *document.ParseError
			if errors.As(r.Err, &parseErr) {
				fmt.Fprintln(errOut, console.FormatLocationMessage(console.ToRelativePath(r.Path)))
				printParseError(errOut, parseErr)
			} else {
				fmt.Fprintln(errOut, console.FormatErrorMessage(r.Err.Error()))
			}
		case !r.Outcome.Result.Valid():
			fmt.Fprintln(errOut, console.FormatLocationMessage(console.ToRelativePath(r.Path)))
			report.PrintIssues(errOut, r.Outcome.Source, r.Path, &r.Outcome.Result)
		case opts.Verbose:
			fmt.Fprintln(out, console.FormatVerboseMessage(fmt.Sprintf("%s: %s", r.Path, r.Outcome.Result.SummaryLine())))
		}
	}

	fmt.Fprint(out, console.RenderTable(console.TableConfig{
		Title:     "Configuration check",
		Headers:   []string{"File", "Type", "Status", "Errors"},
		Rows:      rows,
		ShowTotal: true,
		TotalRow:  []string{"TOTAL", "", fmt.Sprintf("%d failed", failed), strconv.Itoa(totalIssues(results))},
	}))

	if failed > 0 {
		if opts.OutputDir != "" {
			fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("Fix files written to %s", opts.OutputDir)))
		}
		return ErrValidationFailed
	}
	fmt.Fprintln(out, console.FormatSuccessMessage(fmt.Sprintf("All %d files are valid", len(results))))
	return nil
}

func checkRow(r CheckResult) []string {
	name := filepath.Base(r.Path)
	switch {
	case r.Err != nil && errors.Is(r.Err, ErrParseFailed):
		return []string{name, "-", "invalid JSON", "-"}
	case r.Err != nil:
		return []string{name, "-", "error", "-"}
	case r.Outcome.Result.Valid():
		return []string{name, string(r.Outcome.Kind), "ok", "0"}
	default:
		return []string{name, string(r.Outcome.Kind), "failed", strconv.Itoa(len(r.Outcome.Result.Issues))}
	}
}

func totalIssues(results []CheckResult) int {
	total := 0
	for _, r := range results {
		if r.Outcome != nil {
			total += len(r.Outcome.Result.Issues)
		}
	}
	return total
}

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <directory>",
		Short: "Validate every JSON configuration in a directory",
		Long: `Validate every *.json file in a directory.

The type of each file is inferred from its root keys: files with a "tiers" object
and no "zones" are tier configurations, all others zone configurations. Files are
checked concurrently and summarized in a table.

Examples:
  ` + constants.CLIName + ` check ./configs
  ` + constants.CLIName + ` check ./configs --strict --concurrency 4`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts, cfg, err := LoadOptions(cmd)
			if err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			if err := RunCheck(args[0], opts, cfg.Concurrency); err != nil {
				if !IsReported(err) {
					fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				}
				os.Exit(1)
			}
		},
	}

	cmd.Flags().Int("concurrency", constants.MaxConcurrentChecks, "Maximum number of files checked at once")
	return cmd
}
