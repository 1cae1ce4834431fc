package domain

import (
	"time"
)

// ArtifactKind is the filesystem nature of an artifact.
type ArtifactKind string

const (
	KindFile      ArtifactKind = "file"
	KindDirectory ArtifactKind = "directory"
	KindSymlink   ArtifactKind = "symlink"
	KindUnknown   ArtifactKind = "unknown"
)

// ArtifactScope describes how an artifact was selected for inspection.
type ArtifactScope string

const (
	ScopeDefault    ArtifactScope = "default"
	ScopeConfigured ArtifactScope = "configured"
	ScopeDiscovered ArtifactScope = "discovered"
	ScopeSystem     ArtifactScope = "system"
	ScopeUnknown    ArtifactScope = "unknown"
)

// ArtifactCategory is the high-level classification of an installation trace.
type ArtifactCategory string

const (
	CategoryApplication ArtifactCategory = "application"
	CategorySupport     ArtifactCategory = "support"
	CategoryCache       ArtifactCategory = "cache"
	CategoryPreferences ArtifactCategory = "preferences"
	CategoryLogs        ArtifactCategory = "logs"
	CategoryLaunchAgent ArtifactCategory = "launch-agent"
	CategoryOther       ArtifactCategory = "other"
)

// RemovalSafety is guidance for downstream removal tooling.
type RemovalSafety string

const (
	SafetySafe    RemovalSafety = "safe"
	SafetyCaution RemovalSafety = "caution"
	SafetyReview  RemovalSafety = "review"
)

// Artifact is a single filesystem trace tied to an application.
//
// Artifacts are value objects: helpers such as WithNotes and MarkMissing
// return modified copies so that an artifact already handed to one consumer
// (CSV writer, planner) can never be changed underneath it.
type Artifact struct {
	AppName             string           `json:"app_name" yaml:"app_name"`
	Path                string           `json:"path" yaml:"path"`
	Kind                ArtifactKind     `json:"kind" yaml:"kind"`
	Scope               ArtifactScope    `json:"scope" yaml:"scope"`
	Category            ArtifactCategory `json:"category" yaml:"category"`
	RemovalSafety       RemovalSafety    `json:"removal_safety" yaml:"removal_safety"`
	Exists              bool             `json:"exists" yaml:"exists"`
	Writable            *bool            `json:"writable" yaml:"writable"`
	SizeBytes           *int64           `json:"size_bytes" yaml:"size_bytes"`
	LastModified        *time.Time       `json:"last_modified" yaml:"last_modified"`
	Notes               []string         `json:"notes" yaml:"notes"`
	RemovalInstructions []string         `json:"removal_instructions" yaml:"removal_instructions"`
}

// WithNotes returns a copy with the given notes appended.
func (a Artifact) WithNotes(notes ...string) Artifact {
	if len(notes) == 0 {
		return a
	}
	a.Notes = appendCopy(a.Notes, notes)
	return a
}

// WithRemovalInstructions returns a copy with the given instructions appended.
func (a Artifact) WithRemovalInstructions(instructions ...string) Artifact {
	if len(instructions) == 0 {
		return a
	}
	a.RemovalInstructions = appendCopy(a.RemovalInstructions, instructions)
	return a
}

// MarkMissing returns a copy that indicates the backing path no longer exists.
func (a Artifact) MarkMissing() Artifact {
	a.Exists = false
	a.Writable = nil
	a.SizeBytes = nil
	return a
}

// appendCopy appends without sharing the backing array with the receiver.
func appendCopy(dst, src []string) []string {
	out := make([]string, 0, len(dst)+len(src))
	out = append(out, dst...)
	out = append(out, src...)
	return out
}

// ScanResult aggregates the artifacts discovered for a single application.
// Errors carries non-fatal issues hit during the scan, in the order they
// were encountered.
type ScanResult struct {
	AppName     string     `json:"app_name" yaml:"app_name"`
	Artifacts   []Artifact `json:"artifacts" yaml:"artifacts"`
	GeneratedAt time.Time  `json:"generated_at" yaml:"generated_at"`
	Errors      []string   `json:"errors" yaml:"errors"`
}

// NewScanResult creates an empty result stamped with the current UTC time.
func NewScanResult(appName string) ScanResult {
	return ScanResult{AppName: appName, GeneratedAt: time.Now().UTC()}
}

// AddArtifacts returns a copy with the provided artifacts appended.
func (r ScanResult) AddArtifacts(artifacts ...Artifact) ScanResult {
	if len(artifacts) == 0 {
		return r
	}
	out := make([]Artifact, 0, len(r.Artifacts)+len(artifacts))
	out = append(out, r.Artifacts...)
	out = append(out, artifacts...)
	r.Artifacts = out
	return r
}

// AddErrors returns a copy with the provided error messages appended.
func (r ScanResult) AddErrors(messages ...string) ScanResult {
	if len(messages) == 0 {
		return r
	}
	r.Errors = appendCopy(r.Errors, messages)
	return r
}

// ExistingArtifacts returns only the artifacts that still exist on disk.
func (r ScanResult) ExistingArtifacts() []Artifact {
	var out []Artifact
	for _, a := range r.Artifacts {
		if a.Exists {
			out = append(out, a)
		}
	}
	return out
}

// MissingArtifacts returns artifacts that are no longer present on disk.
func (r ScanResult) MissingArtifacts() []Artifact {
	var out []Artifact
	for _, a := range r.Artifacts {
		if !a.Exists {
			out = append(out, a)
		}
	}
	return out
}

// ByCategory returns all artifacts matching the given category.
func (r ScanResult) ByCategory(category ArtifactCategory) []Artifact {
	var out []Artifact
	for _, a := range r.Artifacts {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// TotalSize sums the recorded sizes of all existing artifacts.
func (r ScanResult) TotalSize() int64 {
	var total int64
	for _, a := range r.Artifacts {
		if a.SizeBytes != nil {
			total += *a.SizeBytes
		}
	}
	return total
}

// ScanSummary is a roll-up used when presenting scan outcomes.
type ScanSummary struct {
	AppName            string
	TotalArtifacts     int
	ExistingArtifacts  int
	MissingArtifacts   int
	RemovableArtifacts int
}

// Summarize builds a ScanSummary from a result. An artifact counts as
// removable when its safety tier is safe or caution.
func Summarize(result ScanResult) ScanSummary {
	total := len(result.Artifacts)
	existing := len(result.ExistingArtifacts())
	removable := 0
	for _, a := range result.Artifacts {
		if a.RemovalSafety == SafetySafe || a.RemovalSafety == SafetyCaution {
			removable++
		}
	}
	return ScanSummary{
		AppName:            result.AppName,
		TotalArtifacts:     total,
		ExistingArtifacts:  existing,
		MissingArtifacts:   total - existing,
		RemovableArtifacts: removable,
	}
}

// SummarizeAll produces one summary per scan result, in order.
func SummarizeAll(results []ScanResult) []ScanSummary {
	out := make([]ScanSummary, 0, len(results))
	for _, r := range results {
		out = append(out, Summarize(r))
	}
	return out
}

// FlattenArtifacts collects every artifact across the given results into a
// single ordered slice.
func FlattenArtifacts(results []ScanResult) []Artifact {
	var out []Artifact
	for _, r := range results {
		out = append(out, r.Artifacts...)
	}
	return out
}
