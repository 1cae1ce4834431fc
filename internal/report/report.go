// Package report serializes scan results and deletion plans to the
// formats the audit produces: CSV, JSON, YAML and an executable script.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/apphound/apphound/internal/domain"
	"github.com/apphound/apphound/internal/plan"
)

// csvHeader is the fixed audit column schema.
var csvHeader = []string{
	"App Name",
	"Artifact Path",
	"Kind",
	"Scope",
	"Category",
	"Exists",
	"Writable",
	"Size (bytes)",
	"Last Modified",
	"Removal Safety",
	"Notes",
	"Removal Instructions",
}

// CSVRows flattens scan results into report rows, one per artifact.
func CSVRows(results []domain.ScanResult) [][]string {
	var rows [][]string
	for _, result := range results {
		for _, artifact := range result.Artifacts {
			writable := ""
			if artifact.Writable != nil {
				writable = strconv.FormatBool(*artifact.Writable)
			}
			size := ""
			if artifact.SizeBytes != nil {
				size = strconv.FormatInt(*artifact.SizeBytes, 10)
			}
			modified := ""
			if artifact.LastModified != nil {
				modified = artifact.LastModified.Format(time.RFC3339)
			}
			rows = append(rows, []string{
				result.AppName,
				artifact.Path,
				string(artifact.Kind),
				string(artifact.Scope),
				string(artifact.Category),
				strconv.FormatBool(artifact.Exists),
				writable,
				size,
				modified,
				string(artifact.RemovalSafety),
				strings.Join(artifact.Notes, " | "),
				strings.Join(artifact.RemovalInstructions, " | "),
			})
		}
	}
	return rows
}

// WriteCSV writes the audit CSV report.
func WriteCSV(results []domain.ScanResult, path string) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	if err := writer.WriteAll(CSVRows(results)); err != nil {
		return fmt.Errorf("write CSV rows: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the per-app artifact report as a JSON array.
func WriteJSON(results []domain.ScanResult, path string) error {
	payload, err := json.MarshalIndent(normalize(results), "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return writeFile(path, append(payload, '\n'))
}

// WriteYAML writes the same document as WriteJSON in YAML form.
func WriteYAML(results []domain.ScanResult, path string) error {
	payload, err := yaml.Marshal(normalize(results))
	if err != nil {
		return fmt.Errorf("encode YAML report: %w", err)
	}
	return writeFile(path, payload)
}

// WritePlanJSON writes the deletion plan document.
func WritePlanJSON(p plan.Plan, path string) error {
	payload, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan JSON: %w", err)
	}
	return writeFile(path, append(payload, '\n'))
}

// ReadPlanJSON loads a previously written plan document.
func ReadPlanJSON(path string) (plan.Plan, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	var p plan.Plan
	if err := json.Unmarshal(payload, &p); err != nil {
		return plan.Plan{}, fmt.Errorf("decode plan %s: %w", path, err)
	}
	return p, nil
}

// normalize replaces nil slices so serialized documents always carry
// arrays, never nulls.
func normalize(results []domain.ScanResult) []domain.ScanResult {
	out := make([]domain.ScanResult, len(results))
	for i, result := range results {
		if result.Artifacts == nil {
			result.Artifacts = []domain.Artifact{}
		}
		if result.Errors == nil {
			result.Errors = []string{}
		}
		artifacts := make([]domain.Artifact, len(result.Artifacts))
		for j, artifact := range result.Artifacts {
			if artifact.Notes == nil {
				artifact.Notes = []string{}
			}
			if artifact.RemovalInstructions == nil {
				artifact.RemovalInstructions = []string{}
			}
			artifacts[j] = artifact
		}
		result.Artifacts = artifacts
		out[i] = result
	}
	return out
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	return file, nil
}

func writeFile(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
