package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ScriptOptions controls shell script rendering.
type ScriptOptions struct {
	IncludeHeader bool
	OnlyEnabled   bool
	PromptEach    bool
}

// DefaultScriptOptions renders a guarded script of enabled entries with
// the confirm prologue.
func DefaultScriptOptions() ScriptOptions {
	return ScriptOptions{IncludeHeader: true, OnlyEnabled: true, PromptEach: true}
}

// ScriptLines renders the plan as lines of a portable bash script. Pure
// function of the plan; entry order is preserved.
func ScriptLines(p Plan, opts ScriptOptions) []string {
	var lines []string

	if opts.IncludeHeader {
		lines = append(lines,
			"#!/usr/bin/env bash",
			"set -euo pipefail",
			"",
			"# apphound deletion plan",
			fmt.Sprintf("# plan_id: %s", p.ID),
			fmt.Sprintf("# generated_at: %s", p.GeneratedAt.Format(time.RFC3339)),
			"",
			"confirm() {",
			`  read -r -p "$1 [y/N] " response`,
			`  case "$response" in`,
			"    [yY][eE][sS]|[yY]) true ;;",
			"    *) false ;;",
			"  esac",
			"}",
			"",
		)
	}

	entries := p.Entries
	if opts.OnlyEnabled {
		entries = p.EnabledEntries()
	}

	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("# %s - %s (%s)", entry.AppName, entry.Category, entry.RemovalSafety))
		for _, note := range entry.Notes {
			lines = append(lines, "# note: "+note)
		}
		for _, instruction := range entry.RemovalInstructions {
			lines = append(lines, "# instruction: "+instruction)
		}
		if opts.PromptEach {
			lines = append(lines,
				fmt.Sprintf("if confirm \"Delete %s?\"; then", ShellQuote(entry.Path)),
				"  "+entry.SuggestedCommand,
				"fi",
			)
		} else {
			lines = append(lines, entry.SuggestedCommand)
		}
		lines = append(lines, "")
	}

	lines = append(lines, "# End of deletion plan")
	return lines
}

// WriteScript writes the rendered script to disk, creating parent
// directories and optionally marking the file executable.
func WriteScript(p Plan, path string, opts ScriptOptions, executable bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create script directory: %w", err)
	}
	content := strings.Join(ScriptLines(p, opts), "\n") + "\n"
	mode := os.FileMode(0o644)
	if executable {
		mode = 0o755
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("write deletion script: %w", err)
	}
	return nil
}
