package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apphound/apphound/internal/removal"
	"github.com/apphound/apphound/internal/report"
	"github.com/apphound/apphound/internal/ui"
)

var (
	removePlanPath    string
	removeDryRun      bool
	removeForce       bool
	removeYes         bool
	removeStopOnError bool
	removeApp         string
)

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Execute the enabled entries of a deletion plan",
	Long: `Delete the filesystem targets of a saved deletion plan. Only enabled
entries are touched unless --force is given; each removal asks for
confirmation unless --yes is passed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput(ui.WithQuiet(quiet), ui.WithDebug(debug))
		planPath := orDefault(removePlanPath, filepath.Join(auditOutputDir(), "plan.json"))

		p, err := report.ReadPlanJSON(planPath)
		if err != nil {
			out.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}

		entries := p.Entries
		if removeApp != "" {
			entries = p.ForApp(removeApp)
		}
		if len(entries) == 0 {
			out.Warning("Plan has no matching entries; nothing to remove.")
			return nil
		}

		if removeDryRun {
			out.Highlight("Dry run: no files will be deleted.")
		}

		remover := removal.New(removal.WithConsole(out))
		result := remover.Remove(entries, removal.Options{
			DryRun:      removeDryRun,
			Prompt:      !removeYes && !removeDryRun,
			Force:       removeForce,
			StopOnError: removeStopOnError,
		})

		out.Highlightf("Removal finished: %d succeeded, %d failed, %d skipped.",
			len(result.Succeeded), len(result.Failed), len(result.Skipped))
		for _, failure := range result.Failed {
			out.Errorf("  %s: %s", failure.Entry.Path, failure.Reason)
		}
		return nil
	},
}

func init() {
	removeCmd.Flags().StringVar(&removePlanPath, "plan", "", "Deletion plan JSON path (default ~/.apphound/audit/plan.json)")
	removeCmd.Flags().BoolVar(&removeDryRun, "dry-run", false, "Print commands without deleting anything")
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Attempt every existing entry, even disabled ones")
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip per-entry confirmation prompts")
	removeCmd.Flags().BoolVar(&removeStopOnError, "stop-on-error", false, "Abort the batch at the first failure")
	removeCmd.Flags().StringVar(&removeApp, "app", "", "Restrict removal to one application's entries")
}
