package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/spawncheck/pkg/console"
	"github.com/githubnext/spawncheck/pkg/schema"
)

// DefaultDebounce is the delay between the last write and re-validation
const DefaultDebounce = 300 * time.Millisecond

// WatchFile validates path once, then again after every write until ctx is done.
// Validation failures are printed and do not stop the watch.
func WatchFile(ctx context.Context, path string, kind schema.Kind, opts Options, debounce time.Duration) error {
	out := opts.stdout()
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file instead of writing it, so watch the directory
	dir := filepath.Dir(absPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	validate := func() {
		if err := RunValidate(path, kind, opts); err != nil && !IsReported(err) {
			fmt.Fprintln(opts.stderr(), console.FormatErrorMessage(err.Error()))
		}
	}

	fmt.Fprintln(out, console.FormatInfoMessage(fmt.Sprintf("Watching for changes to %s...", console.ToRelativePath(path))))
	if opts.Verbose {
		fmt.Fprintln(out, console.FormatVerboseMessage("Press Ctrl+C to stop watching."))
	}
	validate()

	var debounceTimer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if opts.Verbose {
				fmt.Fprintln(out, console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", event.Name, event.Op.String())))
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			validate()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Fprintln(out, console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			if opts.Verbose {
				fmt.Fprintln(out, console.FormatVerboseMessage("Stopping watch mode..."))
			}
			return nil
		}
	}
}

// IsReported reports whether err was already printed by RunValidate or RunCheck
func IsReported(err error) bool {
	return errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrParseFailed)
}
