package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/apphound/apphound/internal/appconfig"
	"github.com/apphound/apphound/internal/installer"
	"github.com/apphound/apphound/internal/ui"
)

var installConfigPaths []string

var installCmd = &cobra.Command{
	Use:   "install [installer path]",
	Short: "Run configured installers, or one installer artifact",
	Long: `Without arguments, run the installer of every configured application
that has an installation_path. With a path argument, launch just that
artifact: .pkg files run through the system installer, .app bundles
open directly, .dmg images are flagged for a manual install, anything
else is executed as a program.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.NewOutput(ui.WithQuiet(quiet), ui.WithDebug(debug))
		runner := installer.New()

		if len(args) == 1 {
			outcome := runner.Run(args[0], out)
			return installError(cmd, outcome)
		}

		cfg, err := appconfig.LoadAll(installConfigPaths)
		if err != nil {
			out.Error(err.Error())
			cmd.SilenceUsage = true
			return err
		}

		ran := 0
		failed := 0
		for _, app := range cfg.Apps {
			if app.InstallationPath == "" {
				continue
			}
			ran++
			outcome := runner.Run(app.InstallationPath, out)
			if outcome.Status == installer.StatusNotFound || outcome.Status == installer.StatusError {
				failed++
			}
		}
		if ran == 0 {
			out.Warning("No configured application has an installation path.")
			return nil
		}
		if failed > 0 {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return errors.New("some installers failed")
		}
		return nil
	},
}

func init() {
	installCmd.Flags().StringSliceVar(&installConfigPaths, "config", []string{appconfig.DefaultFileName}, "Apps configuration file(s), JSON or YAML")
}

func installError(cmd *cobra.Command, outcome installer.Outcome) error {
	switch outcome.Status {
	case installer.StatusSuccess, installer.StatusManualActionRequired:
		return nil
	default:
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errors.New(outcome.Message)
	}
}
