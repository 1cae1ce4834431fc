package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apphound/apphound/internal/domain"
	"github.com/apphound/apphound/internal/plan"
)

func sampleResults() []domain.ScanResult {
	size := int64(2048)
	writable := true
	modified := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)

	return []domain.ScanResult{
		domain.NewScanResult("PDF Expert").AddArtifacts(
			domain.Artifact{
				AppName:       "PDF Expert",
				Path:          "/Users/tester/Library/Caches/pdfexpert",
				Kind:          domain.KindDirectory,
				Scope:         domain.ScopeDefault,
				Category:      domain.CategoryCache,
				RemovalSafety: domain.SafetySafe,
				Exists:        true,
				Writable:      &writable,
				LastModified:  &modified,
				Notes:         []string{"User caches"},
			},
			domain.Artifact{
				AppName:       "PDF Expert",
				Path:          "/Users/tester/Library/Preferences/com.pdfexpert.plist",
				Kind:          domain.KindFile,
				Scope:         domain.ScopeDefault,
				Category:      domain.CategoryPreferences,
				RemovalSafety: domain.SafetyCaution,
				Exists:        true,
				Writable:      &writable,
				SizeBytes:     &size,
				LastModified:  &modified,
			},
			domain.Artifact{
				AppName:       "PDF Expert",
				Path:          "/opt/pdf-expert",
				Kind:          domain.KindUnknown,
				Scope:         domain.ScopeConfigured,
				Category:      domain.CategoryOther,
				RemovalSafety: domain.SafetyReview,
			},
		).AddErrors(`Pattern "~/nope/**" did not match any paths.`),
	}
}

func TestCSVRowsOnePerArtifact(t *testing.T) {
	rows := CSVRows(sampleResults())

	require.Len(t, rows, 3)
	assert.Equal(t, "PDF Expert", rows[0][0])
	assert.Equal(t, "/Users/tester/Library/Caches/pdfexpert", rows[0][1])
	assert.Equal(t, "directory", rows[0][2])
	assert.Equal(t, "true", rows[0][5])
	assert.Equal(t, "", rows[0][7], "directories have no size column value")
	assert.Equal(t, "2026-02-01T08:30:00Z", rows[0][8])
	assert.Equal(t, "User caches", rows[0][10])

	assert.Equal(t, "2048", rows[1][7])

	// Missing metadata serializes as empty cells, not zero values.
	assert.Equal(t, "false", rows[2][5])
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "", rows[2][8])
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "audit.csv")

	require.NoError(t, WriteCSV(sampleResults(), path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "App Name", records[0][0])
	assert.Equal(t, "Removal Instructions", records[0][11])
}

func TestWriteJSONNormalizesNilSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	results := []domain.ScanResult{domain.NewScanResult("Empty")}

	require.NoError(t, WriteJSON(results, path))

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"artifacts": []`)
	assert.Contains(t, string(payload), `"errors": []`)
	assert.NotContains(t, string(payload), "null")

	var decoded []domain.ScanResult
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Empty", decoded[0].AppName)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, WriteYAML(sampleResults(), path))

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "app_name: PDF Expert")
	assert.Contains(t, string(payload), "removal_safety: safe")
}

func TestPlanJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	original := plan.Plan{
		ID:          uuid.NewString(),
		GeneratedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		Entries: []plan.Entry{
			{
				AppName:          "Foo",
				Path:             "/tmp/foo-cache",
				Kind:             domain.KindDirectory,
				Category:         domain.CategoryCache,
				RemovalSafety:    domain.SafetySafe,
				Exists:           true,
				Enabled:          true,
				SuggestedCommand: "rm -rf /tmp/foo-cache",
			},
		},
	}

	require.NoError(t, WritePlanJSON(original, path))

	decoded, err := ReadPlanJSON(path)
	require.NoError(t, err)
	assert.Equal(t, original.ID, decoded.ID)
	require.Len(t, decoded.Entries, 1)
	assert.Equal(t, original.Entries[0], decoded.Entries[0])
	assert.True(t, original.GeneratedAt.Equal(decoded.GeneratedAt))
}

func TestReadPlanJSONMissingFile(t *testing.T) {
	_, err := ReadPlanJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReadPlanJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := ReadPlanJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode plan")
}
