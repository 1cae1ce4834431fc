// Package plan turns scan results into a reviewable deletion plan.
package plan

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apphound/apphound/internal/domain"
)

// Entry is a single actionable deletion target derived 1:1 from an
// artifact, annotated with an enabled default and a suggested command.
type Entry struct {
	AppName             string                  `json:"app_name" yaml:"app_name"`
	Path                string                  `json:"path" yaml:"path"`
	Kind                domain.ArtifactKind     `json:"kind" yaml:"kind"`
	Category            domain.ArtifactCategory `json:"category" yaml:"category"`
	Scope               domain.ArtifactScope    `json:"scope" yaml:"scope"`
	Exists              bool                    `json:"exists" yaml:"exists"`
	Writable            *bool                   `json:"writable" yaml:"writable"`
	RemovalSafety       domain.RemovalSafety    `json:"removal_safety" yaml:"removal_safety"`
	Notes               []string                `json:"notes" yaml:"notes"`
	RemovalInstructions []string                `json:"removal_instructions" yaml:"removal_instructions"`
	Enabled             bool                    `json:"enabled" yaml:"enabled"`
	SuggestedCommand    string                  `json:"suggested_command" yaml:"suggested_command"`
}

// Plan groups deletion entries across all scanned applications.
type Plan struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Entries     []Entry   `json:"entries" yaml:"entries"`
}

// EnablePolicy decides whether an artifact's entry starts enabled. A
// returned error (or a panic) makes the planner fall back to the default
// policy for that artifact only.
type EnablePolicy func(domain.Artifact) (bool, error)

// FromScanResults flattens every artifact across the given results into a
// plan. A nil policy uses DefaultEnablePolicy.
func FromScanResults(results []domain.ScanResult, policy EnablePolicy) Plan {
	var entries []Entry
	for _, result := range results {
		for _, artifact := range result.Artifacts {
			enabled := DefaultEnablePolicy(artifact)
			if policy != nil {
				if decided, ok := applyPolicy(policy, artifact); ok {
					enabled = decided
				}
			}
			entries = append(entries, newEntry(artifact, enabled))
		}
	}
	return Plan{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
	}
}

// DefaultEnablePolicy enables only artifacts that currently exist and are
// tiered safe (caches, logs). Caution and review entries stay disabled.
func DefaultEnablePolicy(artifact domain.Artifact) bool {
	return artifact.Exists && artifact.RemovalSafety == domain.SafetySafe
}

// applyPolicy runs a caller-supplied policy defensively: an error or panic
// from the callback is swallowed and the default policy wins instead.
func applyPolicy(policy EnablePolicy, artifact domain.Artifact) (decided, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	decided, err := policy(artifact)
	if err != nil {
		return false, false
	}
	return decided, true
}

func newEntry(artifact domain.Artifact, enabled bool) Entry {
	return Entry{
		AppName:             artifact.AppName,
		Path:                artifact.Path,
		Kind:                artifact.Kind,
		Category:            artifact.Category,
		Scope:               artifact.Scope,
		Exists:              artifact.Exists,
		Writable:            artifact.Writable,
		RemovalSafety:       artifact.RemovalSafety,
		Notes:               artifact.Notes,
		RemovalInstructions: artifact.RemovalInstructions,
		Enabled:             enabled,
		SuggestedCommand:    suggestedCommand(artifact.Kind, artifact.Path),
	}
}

// suggestedCommand proposes the shell removal command: recursive for
// directories, single-entry for everything else (unknown is treated as a
// file for the conservative default).
func suggestedCommand(kind domain.ArtifactKind, path string) string {
	quoted := ShellQuote(path)
	if kind == domain.KindDirectory {
		return fmt.Sprintf("rm -rf %s", quoted)
	}
	return fmt.Sprintf("rm -f %s", quoted)
}

// EnabledEntries filters the plan to entries enabled for removal.
func (p Plan) EnabledEntries() []Entry {
	var out []Entry
	for _, entry := range p.Entries {
		if entry.Enabled {
			out = append(out, entry)
		}
	}
	return out
}

// ForApp returns the entries belonging to one application, in order.
func (p Plan) ForApp(appName string) []Entry {
	var out []Entry
	for _, entry := range p.Entries {
		if entry.AppName == appName {
			out = append(out, entry)
		}
	}
	return out
}

// shellSafePattern matches strings that need no quoting in a POSIX shell.
var shellSafePattern = regexp.MustCompile(`^[a-zA-Z0-9_@%+=:,./-]+$`)

// ShellQuote quotes a string for safe inclusion in shell commands.
func ShellQuote(value string) string {
	if value == "" {
		return "''"
	}
	if shellSafePattern.MatchString(value) {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
