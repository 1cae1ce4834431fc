package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/domain"
)

func candidatePaths(candidates []Candidate) map[string]Candidate {
	out := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		out[c.Path] = c
	}
	return out
}

func TestDefaultCandidatesCoverWellKnownRoots(t *testing.T) {
	home := "/Users/tester"
	byPath := candidatePaths(defaultCandidates(home, "PDF Expert"))

	bundle, ok := byPath["/Applications/PDF Expert.app"]
	require.True(t, ok, "application bundle candidate missing")
	assert.Equal(t, domain.CategoryApplication, bundle.Category)
	assert.Equal(t, domain.ScopeSystem, bundle.Scope)
	assert.Equal(t, domain.SafetyCaution, bundle.RemovalSafety)

	cache, ok := byPath[filepath.Join(home, "Library", "Caches", "pdfexpert")]
	require.True(t, ok, "user cache candidate missing")
	assert.Equal(t, domain.CategoryCache, cache.Category)
	assert.Equal(t, domain.ScopeDefault, cache.Scope)
	assert.Equal(t, domain.SafetySafe, cache.RemovalSafety)
	assert.Equal(t, []string{"User caches"}, cache.Notes)

	prefs, ok := byPath[filepath.Join(home, "Library", "Preferences", "com.pdfexpert.plist")]
	require.True(t, ok, "preferences plist candidate missing")
	assert.Equal(t, domain.CategoryPreferences, prefs.Category)

	logs, ok := byPath["/Library/Logs/pdf-expert"]
	require.True(t, ok, "system log candidate missing")
	assert.Equal(t, domain.SafetySafe, logs.RemovalSafety)

	state, ok := byPath[filepath.Join(home, "Library", "Saved Application State", "com.pdfexpert.savedState")]
	require.True(t, ok, "saved state candidate missing")
	assert.Equal(t, domain.CategorySupport, state.Category)

	container, ok := byPath[filepath.Join(home, "Library", "Containers", "com.pdfexpert")]
	require.True(t, ok, "container candidate missing")
	assert.Equal(t, domain.ScopeDefault, container.Scope)
}

func TestDefaultCandidatesUserApplicationsScope(t *testing.T) {
	home := "/Users/tester"
	byPath := candidatePaths(defaultCandidates(home, "Notes"))

	user, ok := byPath[filepath.Join(home, "Applications", "Notes.app")]
	require.True(t, ok)
	assert.Equal(t, domain.ScopeDefault, user.Scope)

	system, ok := byPath["/System/Applications/Notes.app"]
	require.True(t, ok)
	assert.Equal(t, domain.ScopeSystem, system.Scope)
}

func TestConfiguredCandidatesKeepMissingLocations(t *testing.T) {
	app := appconfig.App{
		Name:                "Foo",
		AdditionalLocations: []string{"/opt/foo-data"},
	}

	candidates, errs := configuredCandidates(app, "/Users/tester")

	assert.Empty(t, errs)
	require.Len(t, candidates, 1)
	assert.Equal(t, "/opt/foo-data", candidates[0].Path)
	assert.Equal(t, domain.ScopeConfigured, candidates[0].Scope)
	assert.Equal(t, domain.SafetyReview, candidates[0].RemovalSafety)
	assert.Equal(t, []string{"Configured additional location"}, candidates[0].Notes)
}

func TestConfiguredCandidatesReportPatternMisses(t *testing.T) {
	pattern := filepath.Join(t.TempDir(), "**", "*.xyz")
	app := appconfig.App{Name: "Foo", Patterns: []string{pattern}}

	candidates, errs := configuredCandidates(app, "/Users/tester")

	assert.Empty(t, candidates)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "did not match any paths")
}

func TestConfiguredCandidatesExpandPatternMatches(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(nested, 0o755))
	target := filepath.Join(nested, "leftover.log")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	app := appconfig.App{Name: "Foo", Patterns: []string{filepath.Join(dir, "**", "*.log")}}

	candidates, errs := configuredCandidates(app, "/Users/tester")

	assert.Empty(t, errs)
	require.Len(t, candidates, 1)
	assert.Equal(t, target, candidates[0].Path)
	assert.Equal(t, domain.ScopeConfigured, candidates[0].Scope)
}

func TestDeepHomeCandidatesMatchByName(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(home, "FooSupport"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "foo-cache.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(home, "bar.txt"), []byte("x"), 0o644))

	candidates, errs := deepHomeCandidates(home, "foo")

	assert.Empty(t, errs)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, domain.ScopeDiscovered, c.Scope)
		assert.Equal(t, domain.SafetyReview, c.RemovalSafety)
	}
}

func TestDeepHomeCandidatesIgnoreTheHomeItself(t *testing.T) {
	parent := t.TempDir()
	home := filepath.Join(parent, "foo-home")
	require.NoError(t, os.Mkdir(home, 0o755))

	candidates, errs := deepHomeCandidates(home, "foo")

	assert.Empty(t, errs)
	assert.Empty(t, candidates)
}
