package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/apphound/apphound/internal/report"
	"github.com/apphound/apphound/internal/review"
	"github.com/apphound/apphound/internal/ui"
)

var reviewPlanPath string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively edit a deletion plan",
	Long: `Open a saved deletion plan in the interactive review table. Toggle
individual entries, then save the edited plan back in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput(ui.WithQuiet(quiet), ui.WithDebug(debug))
		planPath := orDefault(reviewPlanPath, filepath.Join(auditOutputDir(), "plan.json"))

		p, err := report.ReadPlanJSON(planPath)
		if err != nil {
			out.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}
		if len(p.Entries) == 0 {
			out.Warning("Plan has no entries; nothing to review.")
			return nil
		}

		edited, saved, err := review.Run(p)
		if err != nil {
			return err
		}
		if !saved {
			out.Info("Review cancelled; plan left unchanged.")
			return nil
		}

		if err := report.WritePlanJSON(edited, planPath); err != nil {
			return err
		}
		out.Successf("Saved plan with %d enabled entries to %s", len(edited.EnabledEntries()), planPath)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewPlanPath, "plan", "", "Deletion plan JSON path (default ~/.apphound/audit/plan.json)")
}
