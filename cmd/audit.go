package cmd

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/domain"
	"github.com/apphound/apphound/internal/installer"
	"github.com/apphound/apphound/internal/plan"
	"github.com/apphound/apphound/internal/report"
	"github.com/apphound/apphound/internal/scanner"
	"github.com/apphound/apphound/internal/ui"
)

var (
	auditConfigPaths []string
	auditCSVPath     string
	auditJSONPath    string
	auditYAMLPath    string
	auditPlanPath    string
	auditScriptPath  string
	auditDeepSearch  bool
	auditInstallers  bool
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Scan configured apps and write reports plus a deletion plan",
	Long: `Scan every configured application for filesystem leftovers, write the
CSV/JSON artifact reports, and produce a deletion plan with a guarded
removal script.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd)
	},
}

func init() {
	auditCmd.Flags().StringSliceVar(&auditConfigPaths, "config", []string{appconfig.DefaultFileName}, "Apps configuration file(s), JSON or YAML")
	auditCmd.Flags().StringVar(&auditCSVPath, "csv", "", "CSV report path (default ~/.apphound/audit/audit.csv)")
	auditCmd.Flags().StringVar(&auditJSONPath, "json", "", "JSON report path (default ~/.apphound/audit/report.json)")
	auditCmd.Flags().StringVar(&auditYAMLPath, "yaml", "", "Optional YAML report path")
	auditCmd.Flags().StringVar(&auditPlanPath, "plan", "", "Deletion plan JSON path (default ~/.apphound/audit/plan.json)")
	auditCmd.Flags().StringVar(&auditScriptPath, "script", "", "Deletion script path (default ~/.apphound/audit/plan.sh)")
	auditCmd.Flags().BoolVar(&auditDeepSearch, "deep-home-search", false, "Deep-search the home directory for every app")
	auditCmd.Flags().BoolVar(&auditInstallers, "run-installers", false, "Run configured installers before scanning")
}

func runAudit(cmd *cobra.Command) error {
	out := ui.NewOutput(ui.WithQuiet(quiet), ui.WithDebug(debug))
	out.Highlight(ui.IconPaw + " apphound is on the trail!")

	cfg, err := appconfig.LoadAll(auditConfigPaths)
	if err != nil {
		out.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	if len(cfg.Apps) == 0 {
		out.Warning("No applications defined; nothing to scan.")
		return nil
	}

	if auditInstallers {
		runConfiguredInstallers(cfg.Apps, out)
	}

	results := performScans(cfg, out)

	outDir := auditOutputDir()
	csvPath := orDefault(auditCSVPath, filepath.Join(outDir, "audit.csv"))
	jsonPath := orDefault(auditJSONPath, filepath.Join(outDir, "report.json"))
	planPath := orDefault(auditPlanPath, filepath.Join(outDir, "plan.json"))
	scriptPath := orDefault(auditScriptPath, filepath.Join(outDir, "plan.sh"))

	if err := report.WriteCSV(results, csvPath); err != nil {
		return err
	}
	out.Success("Wrote CSV report to " + csvPath)

	if err := report.WriteJSON(results, jsonPath); err != nil {
		return err
	}
	out.Success("Wrote artifact report JSON to " + jsonPath)

	if auditYAMLPath != "" {
		if err := report.WriteYAML(results, auditYAMLPath); err != nil {
			return err
		}
		out.Success("Wrote artifact report YAML to " + auditYAMLPath)
	}

	deletionPlan := plan.FromScanResults(results, nil)
	if err := report.WritePlanJSON(deletionPlan, planPath); err != nil {
		return err
	}
	out.Success("Wrote plan JSON to " + planPath)

	if err := plan.WriteScript(deletionPlan, scriptPath, plan.DefaultScriptOptions(), true); err != nil {
		return err
	}
	out.Success("Wrote deletion script to " + scriptPath)

	printSummary(results, deletionPlan, out)
	out.Highlight("apphound says: fetch complete!")
	return nil
}

// runConfiguredInstallers launches each configured installer, continuing
// through failures so one broken installer never stops the audit.
func runConfiguredInstallers(apps []appconfig.App, out *ui.Output) {
	runner := installer.New()
	for _, app := range apps {
		if app.InstallationPath == "" {
			continue
		}
		outcome := runner.Run(app.InstallationPath, out)
		out.Debugf("installer for %s finished with status %s", app.Name, outcome.Status)
	}
}

// performScans runs the synchronous scan pipeline app by app.
func performScans(cfg appconfig.Config, out *ui.Output) []domain.ScanResult {
	s := scanner.New(scanner.LocalFilesystem{}, scanner.WithDeepHomeSearch(auditDeepSearch))

	results := make([]domain.ScanResult, 0, len(cfg.Apps))
	for _, app := range cfg.Apps {
		out.Infof("Scanning %s ...", app.Name)
		result := s.Scan(app)
		for _, scanErr := range result.Errors {
			out.Warning(scanErr)
		}
		summary := domain.Summarize(result)
		out.Infof("  %d artifacts (%d on disk, %d flagged removable)",
			summary.TotalArtifacts, summary.ExistingArtifacts, summary.RemovableArtifacts)
		results = append(results, result)
	}
	return results
}

func printSummary(results []domain.ScanResult, deletionPlan plan.Plan, out *ui.Output) {
	summaries := domain.SummarizeAll(results)
	var total, existing, removable int
	var totalSize int64
	for i, summary := range summaries {
		total += summary.TotalArtifacts
		existing += summary.ExistingArtifacts
		removable += summary.RemovableArtifacts
		totalSize += results[i].TotalSize()
	}
	out.Highlightf("Summary: %d/%d artifacts currently exist; %d flagged safe or caution for removal.",
		existing, total, removable)
	out.Infof("Recorded file size on disk: %s; %d plan entries enabled by default.",
		ui.FormatSize(totalSize), len(deletionPlan.EnabledEntries()))

	if usage, err := disk.Usage(homeDir()); err == nil {
		out.Infof("Disk: %s free of %s on the home volume.",
			ui.FormatSize(int64(usage.Free)), ui.FormatSize(int64(usage.Total)))
	}
}

func auditOutputDir() string {
	return filepath.Join(homeDir(), ".apphound", "audit")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
