package cli

import (
	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete your plan and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Programs.Reset(cmd.Context(), newConfirmer(cmd, app, yes)); err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), "Plan deleted. Run %s to build a new one.", formatter.Bold("grindfit start"))
			return nil
		},
	}

	addYesFlag(cmd, &yes)
	return cmd
}
