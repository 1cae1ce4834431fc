package scanner

import (
	"fmt"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/domain"
)

// Scanner derives candidate paths for an application and materializes the
// ones that matter into artifacts. It is a single-pass, synchronous
// pipeline: one Scan call per application, no shared state between calls.
type Scanner struct {
	fs          Filesystem
	deepDefault bool
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithDeepHomeSearch makes every scan perform the deep home walk even when
// the application's own flag is off.
func WithDeepHomeSearch(enabled bool) Option {
	return func(s *Scanner) { s.deepDefault = enabled }
}

// New creates a Scanner probing through the given filesystem gateway.
// A nil gateway falls back to the real local filesystem.
func New(fs Filesystem, opts ...Option) *Scanner {
	if fs == nil {
		fs = LocalFilesystem{}
	}
	s := &Scanner{fs: fs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan runs the full candidate pipeline for one application. Non-fatal
// problems (pattern misses, walk errors, stat failures) are accumulated in
// the result's error list; no single candidate failure aborts the scan.
func (s *Scanner) Scan(app appconfig.App) domain.ScanResult {
	home := s.fs.Home()
	deep := app.DeepHomeSearch || s.deepDefault

	candidates := defaultCandidates(home, app.Name)
	configured, errs := configuredCandidates(app, home)
	candidates = append(candidates, configured...)
	if deep {
		discovered, deepErrs := deepHomeCandidates(home, app.Name)
		candidates = append(candidates, discovered...)
		errs = append(errs, deepErrs...)
	}

	result := domain.NewScanResult(app.Name).AddErrors(errs...)

	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		canonical := s.fs.Resolve(candidate.Path)
		if _, dup := seen[canonical]; dup {
			// First classification wins.
			continue
		}
		seen[canonical] = struct{}{}

		artifact, errMsg := s.materialize(app.Name, candidate, canonical)
		if artifact.Exists || candidate.Scope == domain.ScopeConfigured {
			result = result.AddArtifacts(artifact)
		}
		if errMsg != "" {
			result = result.AddErrors(errMsg)
		}
	}

	return result
}

// materialize probes one candidate and builds its artifact. The returned
// string is a non-fatal error message, empty when metadata was read cleanly.
func (s *Scanner) materialize(appName string, candidate Candidate, resolved string) (domain.Artifact, string) {
	exists := s.fs.Exists(resolved)
	kind := s.determineKind(resolved, exists)

	artifact := domain.Artifact{
		AppName:       appName,
		Path:          resolved,
		Kind:          kind,
		Scope:         candidate.Scope,
		Category:      candidate.Category,
		RemovalSafety: candidate.RemovalSafety,
		Exists:        exists,
		Notes:         candidate.Notes,
	}
	if !exists {
		return artifact, ""
	}

	writable := s.fs.IsWritable(resolved)
	artifact.Writable = &writable

	meta, err := s.fs.Stat(resolved)
	if err != nil {
		return artifact, fmt.Sprintf("Failed to read metadata for %s: %v", resolved, err)
	}
	if kind == domain.KindFile && !s.fs.IsSymlink(resolved) {
		size := meta.Size
		artifact.SizeBytes = &size
	}
	modified := meta.ModTime.UTC()
	artifact.LastModified = &modified

	return artifact, ""
}

// determineKind checks symlink before directory before file; anything else
// that exists, and anything that does not exist, is unknown.
func (s *Scanner) determineKind(path string, exists bool) domain.ArtifactKind {
	if !exists {
		return domain.KindUnknown
	}
	switch {
	case s.fs.IsSymlink(path):
		return domain.KindSymlink
	case s.fs.IsDir(path):
		return domain.KindDirectory
	case s.fs.IsFile(path):
		return domain.KindFile
	default:
		return domain.KindUnknown
	}
}
