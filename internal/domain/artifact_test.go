package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestWithNotesDoesNotMutateOriginal(t *testing.T) {
	original := Artifact{AppName: "Foo", Notes: []string{"first"}}

	annotated := original.WithNotes("second")

	require.Equal(t, []string{"first", "second"}, annotated.Notes)
	assert.Equal(t, []string{"first"}, original.Notes)
}

func TestWithNotesSharesNoBackingArray(t *testing.T) {
	original := Artifact{Notes: make([]string, 1, 4)}
	original.Notes[0] = "first"

	a := original.WithNotes("a")
	b := original.WithNotes("b")

	assert.Equal(t, []string{"first", "a"}, a.Notes)
	assert.Equal(t, []string{"first", "b"}, b.Notes)
}

func TestMarkMissingClearsMetadata(t *testing.T) {
	artifact := Artifact{
		Exists:    true,
		Writable:  boolPtr(true),
		SizeBytes: int64Ptr(42),
	}

	missing := artifact.MarkMissing()

	assert.False(t, missing.Exists)
	assert.Nil(t, missing.Writable)
	assert.Nil(t, missing.SizeBytes)
	assert.True(t, artifact.Exists, "original must be untouched")
}

func TestAddArtifactsReturnsCopy(t *testing.T) {
	result := NewScanResult("Foo")

	grown := result.AddArtifacts(Artifact{Path: "/a"}, Artifact{Path: "/b"})

	assert.Empty(t, result.Artifacts)
	require.Len(t, grown.Artifacts, 2)
	assert.Equal(t, "Foo", grown.AppName)
	assert.False(t, grown.GeneratedAt.IsZero())
}

func TestExistingAndMissingPartition(t *testing.T) {
	result := NewScanResult("Foo").AddArtifacts(
		Artifact{Path: "/a", Exists: true},
		Artifact{Path: "/b"},
		Artifact{Path: "/c", Exists: true},
	)

	assert.Len(t, result.ExistingArtifacts(), 2)
	assert.Len(t, result.MissingArtifacts(), 1)
}

func TestTotalSizeSkipsUnknownSizes(t *testing.T) {
	result := NewScanResult("Foo").AddArtifacts(
		Artifact{Path: "/a", Exists: true, SizeBytes: int64Ptr(100)},
		Artifact{Path: "/b", Exists: true},
		Artifact{Path: "/c", Exists: true, SizeBytes: int64Ptr(23)},
	)

	assert.Equal(t, int64(123), result.TotalSize())
}

func TestSummarizeCountsRemovableTiers(t *testing.T) {
	result := NewScanResult("Foo").AddArtifacts(
		Artifact{Path: "/a", Exists: true, RemovalSafety: SafetySafe},
		Artifact{Path: "/b", Exists: true, RemovalSafety: SafetyCaution},
		Artifact{Path: "/c", RemovalSafety: SafetyReview},
	)

	summary := Summarize(result)

	assert.Equal(t, 3, summary.TotalArtifacts)
	assert.Equal(t, 2, summary.ExistingArtifacts)
	assert.Equal(t, 1, summary.MissingArtifacts)
	assert.Equal(t, 2, summary.RemovableArtifacts)
}

func TestByCategory(t *testing.T) {
	result := NewScanResult("Foo").AddArtifacts(
		Artifact{Path: "/a", Category: CategoryCache},
		Artifact{Path: "/b", Category: CategoryLogs},
		Artifact{Path: "/c", Category: CategoryCache},
	)

	caches := result.ByCategory(CategoryCache)
	require.Len(t, caches, 2)
	assert.Equal(t, "/a", caches[0].Path)
	assert.Equal(t, "/c", caches[1].Path)
}

func TestFlattenArtifactsPreservesOrder(t *testing.T) {
	first := NewScanResult("Foo").AddArtifacts(Artifact{Path: "/a"})
	second := NewScanResult("Bar").AddArtifacts(Artifact{Path: "/b"}, Artifact{Path: "/c"})

	flat := FlattenArtifacts([]ScanResult{first, second})

	require.Len(t, flat, 3)
	assert.Equal(t, "/a", flat[0].Path)
	assert.Equal(t, "/c", flat[2].Path)
}
