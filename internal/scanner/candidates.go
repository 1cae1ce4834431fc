package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/domain"
)

// Candidate is a hypothesized artifact path before filesystem verification.
type Candidate struct {
	Path          string
	Category      domain.ArtifactCategory
	Scope         domain.ArtifactScope
	RemovalSafety domain.RemovalSafety
	Notes         []string
}

// deepSearchLimit caps the number of deep home search matches collected
// before the walk is truncated.
const deepSearchLimit = 500

// candidateRoot is one well-known directory joined against name variants.
type candidateRoot struct {
	path  string
	scope domain.ArtifactScope
	note  string
}

// defaultCandidates cross-joins the name and bundle variants with the
// fixed table of well-known macOS locations.
func defaultCandidates(home, appName string) []Candidate {
	names := NameCandidates(appName)
	bundles := BundleCandidates(appName, names)

	appTitles := uniqueNonEmpty(stripAppSuffixes(names))
	bundleDirs := make([]string, 0, len(appTitles))
	for _, title := range appTitles {
		bundleDirs = append(bundleDirs, title+".app")
	}
	bundleDirs = uniqueNonEmpty(bundleDirs)

	combined := make([]string, 0, len(names)+len(bundles))
	combined = append(combined, names...)
	combined = append(combined, bundles...)

	var out []Candidate
	add := func(path string, category domain.ArtifactCategory, scope domain.ArtifactScope, safety domain.RemovalSafety, note string) {
		out = append(out, Candidate{
			Path:          path,
			Category:      category,
			Scope:         scope,
			RemovalSafety: safety,
			Notes:         []string{note},
		})
	}

	// ── Application bundles ──────────────────────────────────
	applicationRoots := []candidateRoot{
		{"/Applications", domain.ScopeSystem, "System Applications directory"},
		{"/Applications/Utilities", domain.ScopeSystem, "System Utilities directory"},
		{"/System/Applications", domain.ScopeSystem, "System managed Applications directory"},
		{"/System/Applications/Utilities", domain.ScopeSystem, "System managed Utilities directory"},
		{"/Applications/Setapp", domain.ScopeSystem, "Setapp directory"},
		{filepath.Join(home, "Applications"), domain.ScopeDefault, "User Applications directory"},
	}
	for _, root := range applicationRoots {
		for _, bundle := range bundleDirs {
			add(filepath.Join(root.path, bundle), domain.CategoryApplication, root.scope, domain.SafetyCaution, root.note)
		}
		for _, title := range appTitles {
			add(filepath.Join(root.path, title), domain.CategoryApplication, root.scope, domain.SafetyCaution, root.note)
		}
	}

	// ── Shared user data ─────────────────────────────────────
	for _, title := range appTitles {
		add(filepath.Join("/Users/Shared", title), domain.CategorySupport, domain.ScopeSystem, domain.SafetyCaution, "Shared user directory")
	}

	// ── Application Support ──────────────────────────────────
	supportRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Application Support"), domain.ScopeDefault, "User Application Support location"},
		{"/Library/Application Support", domain.ScopeSystem, "System Application Support location"},
	}
	for _, root := range supportRoots {
		for _, name := range combined {
			add(filepath.Join(root.path, name), domain.CategorySupport, root.scope, domain.SafetyCaution, root.note)
		}
	}

	// ── Preferences ──────────────────────────────────────────
	preferenceRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Preferences"), domain.ScopeDefault, "User preferences plist"},
		{"/Library/Preferences", domain.ScopeSystem, "System preferences plist"},
	}
	preferenceTargets := make([]string, 0, len(names)+len(bundles))
	preferenceTargets = append(preferenceTargets, names...)
	for _, bundle := range bundles {
		preferenceTargets = append(preferenceTargets, bundle+".plist")
	}
	preferenceTargets = uniqueNonEmpty(preferenceTargets)
	for _, root := range preferenceRoots {
		for _, target := range preferenceTargets {
			if !strings.HasSuffix(target, ".plist") {
				target += ".plist"
			}
			add(filepath.Join(root.path, target), domain.CategoryPreferences, root.scope, domain.SafetyCaution, root.note)
		}
	}

	// ── Launch agents and daemons ────────────────────────────
	launchRoots := []candidateRoot{
		{filepath.Join(home, "Library", "LaunchAgents"), domain.ScopeDefault, "User LaunchAgents plist"},
		{"/Library/LaunchAgents", domain.ScopeSystem, "System LaunchAgents plist"},
		{"/Library/LaunchDaemons", domain.ScopeSystem, "System LaunchDaemons plist"},
	}
	for _, root := range launchRoots {
		for _, name := range combined {
			add(filepath.Join(root.path, name+".plist"), domain.CategoryLaunchAgent, root.scope, domain.SafetyCaution, root.note)
		}
	}

	// ── Caches ───────────────────────────────────────────────
	cacheRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Caches"), domain.ScopeDefault, "User caches"},
		{"/Library/Caches", domain.ScopeSystem, "System caches"},
	}
	for _, root := range cacheRoots {
		for _, name := range combined {
			add(filepath.Join(root.path, name), domain.CategoryCache, root.scope, domain.SafetySafe, root.note)
		}
	}

	// ── Logs ─────────────────────────────────────────────────
	logRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Logs"), domain.ScopeDefault, "User logs"},
		{"/Library/Logs", domain.ScopeSystem, "System logs"},
	}
	for _, root := range logRoots {
		for _, name := range combined {
			add(filepath.Join(root.path, name), domain.CategoryLogs, root.scope, domain.SafetySafe, root.note)
		}
	}

	// ── Saved application state ──────────────────────────────
	savedStateRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Saved Application State"), domain.ScopeDefault, "User saved application state"},
		{"/Library/Saved Application State", domain.ScopeSystem, "System saved application state"},
	}
	for _, root := range savedStateRoots {
		for _, bundle := range bundles {
			add(filepath.Join(root.path, bundle+".savedState"), domain.CategorySupport, root.scope, domain.SafetyCaution, root.note)
		}
	}

	// ── Containers and scripts ───────────────────────────────
	containerRoots := []candidateRoot{
		{filepath.Join(home, "Library", "Containers"), domain.ScopeDefault, "User application containers"},
		{filepath.Join(home, "Library", "Group Containers"), domain.ScopeDefault, "User group containers"},
		{filepath.Join(home, "Library", "Application Scripts"), domain.ScopeDefault, "User application scripts"},
	}
	for _, root := range containerRoots {
		for _, bundle := range bundles {
			add(filepath.Join(root.path, bundle), domain.CategorySupport, root.scope, domain.SafetyCaution, root.note)
		}
	}

	return out
}

// configuredCandidates turns user-configured locations and glob patterns
// into candidates. Missing locations are still scanned; a pattern that
// matches nothing yields a non-fatal error instead of a candidate.
func configuredCandidates(app appconfig.App, home string) ([]Candidate, []string) {
	var candidates []Candidate
	var errs []string

	for _, location := range app.AdditionalLocations {
		candidates = append(candidates, Candidate{
			Path:          location,
			Category:      domain.CategoryOther,
			Scope:         domain.ScopeConfigured,
			RemovalSafety: domain.SafetyReview,
			Notes:         []string{"Configured additional location"},
		})
	}

	for _, pattern := range app.Patterns {
		expanded := ExpandPath(pattern, home)
		matches, err := doublestar.FilepathGlob(expanded)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Pattern %q is not a valid glob: %v", pattern, err))
			continue
		}
		if len(matches) == 0 {
			errs = append(errs, fmt.Sprintf("Pattern %q did not match any paths.", pattern))
			continue
		}
		for _, match := range matches {
			candidates = append(candidates, Candidate{
				Path:          match,
				Category:      domain.CategoryOther,
				Scope:         domain.ScopeConfigured,
				RemovalSafety: domain.SafetyReview,
				Notes:         []string{fmt.Sprintf("Matched configured pattern %q", pattern)},
			})
		}
	}

	return candidates, errs
}

// deepHomeCandidates walks the home directory and collects every entry
// whose name contains the application name, case-insensitively. The walk
// stops after deepSearchLimit matches; I/O errors are collected, not raised.
func deepHomeCandidates(home, appName string) ([]Candidate, []string) {
	var candidates []Candidate
	var errs []string
	needle := strings.ToLower(appName)
	truncated := false

	walkErr := filepath.WalkDir(home, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, fmt.Sprintf("Deep home search encountered an error at %s: %v", path, err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == home {
			return nil
		}
		if strings.Contains(strings.ToLower(entry.Name()), needle) {
			candidates = append(candidates, Candidate{
				Path:          path,
				Category:      domain.CategoryOther,
				Scope:         domain.ScopeDiscovered,
				RemovalSafety: domain.SafetyReview,
				Notes:         []string{"Deep home search match"},
			})
			if len(candidates) >= deepSearchLimit {
				truncated = true
				return fs.SkipAll
			}
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Sprintf("Deep home search failed: %v", walkErr))
	}
	if truncated {
		errs = append(errs, fmt.Sprintf("Deep home search truncated after %d matches.", deepSearchLimit))
	}

	return candidates, errs
}

func stripAppSuffixes(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, StripAppSuffix(v))
	}
	return out
}
