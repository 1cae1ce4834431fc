package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/domain"
	"github.com/apphound/apphound/internal/report"
	"github.com/apphound/apphound/internal/scanner"
	"github.com/apphound/apphound/internal/ui"
)

var (
	scanLocations []string
	scanPatterns  []string
	scanDeep      bool
	scanJSONPath  string
)

var scanCmd = &cobra.Command{
	Use:   "scan <app name>",
	Short: "Scan a single application without a configuration file",
	Long: `Scan one application ad hoc. The app name drives the candidate path
generation; extra locations and glob patterns can be supplied on the
command line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput(ui.WithQuiet(quiet), ui.WithDebug(debug))

		app := appconfig.App{
			Name:                args[0],
			AdditionalLocations: scanLocations,
			Patterns:            scanPatterns,
			DeepHomeSearch:      scanDeep,
		}

		s := scanner.New(scanner.LocalFilesystem{}, scanner.WithDeepHomeSearch(scanDeep))
		result := s.Scan(app)

		for _, scanErr := range result.Errors {
			out.Warning(scanErr)
		}
		printArtifacts(result, out)

		if scanJSONPath != "" {
			if err := report.WriteJSON([]domain.ScanResult{result}, scanJSONPath); err != nil {
				return err
			}
			out.Success("Wrote artifact report JSON to " + scanJSONPath)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanLocations, "location", nil, "Additional location to probe (repeatable)")
	scanCmd.Flags().StringSliceVar(&scanPatterns, "pattern", nil, "Glob pattern to expand (repeatable)")
	scanCmd.Flags().BoolVar(&scanDeep, "deep", false, "Deep-search the home directory")
	scanCmd.Flags().StringVar(&scanJSONPath, "json", "", "Write the result as JSON to this path")
}

func printArtifacts(result domain.ScanResult, out *ui.Output) {
	summary := domain.Summarize(result)
	out.Highlightf("%s: %d artifacts (%d on disk)", result.AppName, summary.TotalArtifacts, summary.ExistingArtifacts)

	for _, artifact := range result.Artifacts {
		mark := ui.IconCross
		if artifact.Exists {
			mark = ui.IconCheck
		}
		size := ""
		if artifact.SizeBytes != nil {
			size = "  " + ui.FormatSize(*artifact.SizeBytes)
		}
		out.Infof("  %s [%s/%s] %s%s", mark, artifact.Category, artifact.RemovalSafety, artifact.Path, size)
	}
}
