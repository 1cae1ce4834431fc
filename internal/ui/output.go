// Package ui is the console presenter: styled, TTY-aware message output
// shared by every command. The core never prints directly; it talks to an
// Output (or any compatible console), so a no-op presenter works too.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.Color("#7AA2F7")
	ColorSuccess = lipgloss.Color("#9ECE6A")
	ColorWarning = lipgloss.Color("#E0AF68")
	ColorError   = lipgloss.Color("#F7768E")
	ColorMuted   = lipgloss.Color("#565F89")
	ColorText    = lipgloss.Color("#C0CAF5")
	ColorAccent  = lipgloss.Color("#BB9AF7")
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconBullet  = "•"
	IconChevron = "›"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconWarning = "!"
	IconPaw     = "🐾"
)

// ─── Output ──────────────────────────────────────────────────────────────────

// Output renders presenter messages. Quiet mode suppresses informational
// lines but never warnings or errors; styling is dropped off-TTY.
type Output struct {
	w     io.Writer
	quiet bool
	debug bool
	color bool
}

// Option configures an Output.
type Option func(*Output)

// WithQuiet suppresses info, success and highlight messages.
func WithQuiet(quiet bool) Option {
	return func(o *Output) { o.quiet = quiet }
}

// WithDebug enables Debugf lines.
func WithDebug(debug bool) Option {
	return func(o *Output) { o.debug = debug }
}

// WithWriter redirects output, disabling TTY color detection.
func WithWriter(w io.Writer) Option {
	return func(o *Output) {
		o.w = w
		o.color = false
	}
}

// NewOutput creates a presenter writing to stdout, colored only when
// stdout is a terminal.
func NewOutput(opts ...Option) *Output {
	o := &Output{
		w:     os.Stdout,
		color: isatty.IsTerminal(os.Stdout.Fd()),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewNoop returns a presenter that discards everything.
func NewNoop() *Output {
	return &Output{w: io.Discard, quiet: true}
}

func (o *Output) render(style lipgloss.Style, message string) string {
	if !o.color {
		return message
	}
	return style.Render(message)
}

func (o *Output) Info(message string) {
	if o.quiet {
		return
	}
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorText), message))
}

func (o *Output) Success(message string) {
	if o.quiet {
		return
	}
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorSuccess), IconCheck+" "+message))
}

func (o *Output) Warning(message string) {
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorWarning), IconWarning+" "+message))
}

func (o *Output) Error(message string) {
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorError).Bold(true), IconCross+" "+message))
}

func (o *Output) Highlight(message string) {
	if o.quiet {
		return
	}
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorAccent).Bold(true), message))
}

// Debugf prints a muted diagnostic line when debug mode is on.
func (o *Output) Debugf(format string, args ...any) {
	if !o.debug {
		return
	}
	fmt.Fprintln(o.w, o.render(lipgloss.NewStyle().Foreground(ColorMuted), fmt.Sprintf(format, args...)))
}

// Infof is Info with formatting.
func (o *Output) Infof(format string, args ...any) {
	o.Info(fmt.Sprintf(format, args...))
}

// Successf is Success with formatting.
func (o *Output) Successf(format string, args ...any) {
	o.Success(fmt.Sprintf(format, args...))
}

// Warningf is Warning with formatting.
func (o *Output) Warningf(format string, args ...any) {
	o.Warning(fmt.Sprintf(format, args...))
}

// Errorf is Error with formatting.
func (o *Output) Errorf(format string, args ...any) {
	o.Error(fmt.Sprintf(format, args...))
}

// Highlightf is Highlight with formatting.
func (o *Output) Highlightf(format string, args ...any) {
	o.Highlight(fmt.Sprintf(format, args...))
}

// FormatSize renders a byte count in binary units (KiB, MiB, ...).
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-"
	}
	return humanize.IBytes(uint64(bytes))
}
