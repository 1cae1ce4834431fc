// Package installer launches macOS installer artifacts and reports
// structured outcomes instead of raising errors, so a failed installer
// never stops the rest of an audit run.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// installTimeout is the maximum time to wait for an installer process.
const installTimeout = 10 * time.Minute

// Status summarizes an installer execution attempt.
type Status string

const (
	StatusSuccess              Status = "success"
	StatusNotFound             Status = "not_found"
	StatusManualActionRequired Status = "manual_action_required"
	StatusError                Status = "error"
)

// Outcome describes the result of one installer run.
type Outcome struct {
	Status   Status
	Path     string
	ExitCode *int
	Message  string
}

// Feedback receives progress messages during a run. The zero-value silent
// implementation is used when nil is passed.
type Feedback interface {
	Highlight(message string)
	Info(message string)
	Warning(message string)
	Error(message string)
}

type silentFeedback struct{}

func (silentFeedback) Highlight(string) {}
func (silentFeedback) Info(string)      {}
func (silentFeedback) Warning(string)   {}
func (silentFeedback) Error(string)     {}

// CommandRunner executes a command line and returns its exit code. A
// non-nil error means the process could not be run or timed out.
type CommandRunner func(args []string) (int, error)

// Runner executes installer artifacts by extension: .pkg through the
// privileged system installer, .app bundles via open, .dmg flagged as
// manual, anything else executed directly.
type Runner struct {
	run CommandRunner
}

// Option configures a Runner.
type Option func(*Runner)

// WithCommandRunner substitutes the subprocess execution, mainly for tests.
func WithCommandRunner(run CommandRunner) Option {
	return func(r *Runner) {
		if run != nil {
			r.run = run
		}
	}
}

// New creates a Runner backed by real subprocess execution.
func New(opts ...Option) *Runner {
	r := &Runner{run: runCommand}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the installer at the given path and reports the outcome.
func (r *Runner) Run(installerPath string, feedback Feedback) Outcome {
	if feedback == nil {
		feedback = silentFeedback{}
	}
	path := expand(installerPath)

	if _, err := os.Stat(path); err != nil {
		message := fmt.Sprintf("Installer not found at %s", path)
		feedback.Error(message)
		return Outcome{Status: StatusNotFound, Path: path, Message: message}
	}

	feedback.Highlight("Launching installer at " + path)

	switch {
	case strings.EqualFold(filepath.Ext(path), ".pkg"):
		return r.execute(path, []string{"sudo", "installer", "-pkg", path, "-target", "/"}, "Package installed successfully.", feedback)

	case strings.EqualFold(filepath.Ext(path), ".dmg"):
		message := fmt.Sprintf("Manual action required: mount the DMG at %s and complete the installation from the mounted volume.", path)
		feedback.Warning(message)
		return Outcome{Status: StatusManualActionRequired, Path: path, Message: message}

	case isAppBundle(path):
		return r.execute(path, []string{"open", path}, "Application bundle opened.", feedback)

	default:
		return r.execute(path, []string{path}, "Installer executed.", feedback)
	}
}

func (r *Runner) execute(path string, args []string, successMessage string, feedback Feedback) Outcome {
	exitCode, err := r.run(args)
	if err != nil {
		message := fmt.Sprintf("Installer at %s could not be run: %v", path, err)
		feedback.Error(message)
		return Outcome{Status: StatusError, Path: path, Message: message}
	}
	if exitCode == 0 {
		feedback.Info(successMessage)
		return Outcome{Status: StatusSuccess, Path: path, ExitCode: &exitCode, Message: successMessage}
	}

	message := fmt.Sprintf("Installer at %s exited with a non-zero status (%d). Review the installer logs for more details.", path, exitCode)
	feedback.Error(message)
	return Outcome{Status: StatusError, Path: path, ExitCode: &exitCode, Message: message}
}

// runCommand executes the command with a timeout, streaming output to the
// terminal. Exit codes are reported as values, not errors.
func runCommand(args []string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return -1, fmt.Errorf("installer timed out after %s", installTimeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func isAppBundle(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir() && strings.HasSuffix(strings.ToLower(path), ".app")
}

func expand(path string) string {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if expanded == "~" {
				return home
			}
			return filepath.Join(home, expanded[2:])
		}
	}
	return expanded
}
