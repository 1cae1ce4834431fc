// Package removal executes deletion plan entries against the filesystem.
package removal

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/apphound/apphound/internal/domain"
	"github.com/apphound/apphound/internal/plan"
)

// Console is the minimal output surface the remover reports through.
// A no-op implementation is used when none is supplied.
type Console interface {
	Info(message string)
	Success(message string)
	Warning(message string)
	Error(message string)
	Highlight(message string)
}

type silentConsole struct{}

func (silentConsole) Info(string)      {}
func (silentConsole) Success(string)   {}
func (silentConsole) Warning(string)   {}
func (silentConsole) Error(string)     {}
func (silentConsole) Highlight(string) {}

// Options controls one removal run.
type Options struct {
	// DryRun prints the planned commands without touching the filesystem.
	DryRun bool
	// Prompt asks for per-entry confirmation before each removal.
	Prompt bool
	// Force attempts every existing entry regardless of its enabled flag.
	Force bool
	// StopOnError aborts the batch at the first failure.
	StopOnError bool
}

// Failure pairs a plan entry with the reason its removal failed.
type Failure struct {
	Entry  plan.Entry
	Reason string
}

// Report partitions a removal run into succeeded, failed and skipped
// entries.
type Report struct {
	Succeeded []plan.Entry
	Failed    []Failure
	Skipped   []plan.Entry
}

// Remover runs deletions for plan entries with dry-run support, per-entry
// prompting and partitioned error reporting.
type Remover struct {
	out     Console
	confirm func(path string) bool
}

// Option configures a Remover.
type Option func(*Remover)

// WithConsole routes removal progress through the given console.
func WithConsole(out Console) Option {
	return func(r *Remover) {
		if out != nil {
			r.out = out
		}
	}
}

// WithConfirm replaces the interactive stdin confirmation.
func WithConfirm(confirm func(path string) bool) Option {
	return func(r *Remover) {
		if confirm != nil {
			r.confirm = confirm
		}
	}
}

// New creates a Remover. By default it is silent and confirms via stdin.
func New(opts ...Option) *Remover {
	r := &Remover{out: silentConsole{}, confirm: stdinConfirm}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Remove executes removals for the provided entries and reports the
// partitioned outcome. Failures never abort the batch unless StopOnError
// is set.
func (r *Remover) Remove(entries []plan.Entry, opts Options) Report {
	var report Report

	for _, entry := range entries {
		if !(entry.Enabled || opts.Force) || !entry.Exists {
			report.Skipped = append(report.Skipped, entry)
			continue
		}

		if opts.Prompt && !r.confirm(entry.Path) {
			r.out.Info("Skipped (user choice): " + entry.Path)
			report.Skipped = append(report.Skipped, entry)
			continue
		}

		if opts.DryRun {
			r.out.Highlight("DRY-RUN: " + entry.SuggestedCommand)
			report.Succeeded = append(report.Succeeded, entry)
			continue
		}

		if err := removeEntry(entry); err != nil {
			reason := err.Error()
			r.out.Error(fmt.Sprintf("Failed to remove %s: %s", entry.Path, reason))
			report.Failed = append(report.Failed, Failure{Entry: entry, Reason: reason})
			if opts.StopOnError {
				break
			}
			continue
		}

		r.out.Success("Removed: " + entry.Path)
		report.Succeeded = append(report.Succeeded, entry)
	}

	return report
}

// removeEntry deletes a single target. Symlinks are unlinked directly and
// never followed; directories are removed recursively; files and unknown
// kinds get a single-entry remove.
func removeEntry(entry plan.Entry) error {
	// Re-check just-in-time: the target may have vanished since scan time.
	// A dangling symlink fails os.Stat but can still be unlinked.
	info, lerr := os.Lstat(entry.Path)
	if lerr != nil {
		return fmt.Errorf("target not found: %s", entry.Path)
	}

	makeWritableBestEffort(entry.Path)

	if info.Mode()&os.ModeSymlink != 0 || entry.Kind == domain.KindSymlink {
		return os.Remove(entry.Path)
	}
	if entry.Kind == domain.KindDirectory || info.IsDir() {
		return os.RemoveAll(entry.Path)
	}
	return os.Remove(entry.Path)
}

// makeWritableBestEffort adds the user-write bit to the target. Only this
// step may fail silently; the remove call itself must surface its error.
func makeWritableBestEffort(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	_ = os.Chmod(path, info.Mode().Perm()|0o200)
}

func stdinConfirm(path string) bool {
	fmt.Printf("Delete %s? [y/N] ", path)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
