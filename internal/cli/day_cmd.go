package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	var next, prev, today bool

	cmd := &cobra.Command{
		Use:   "day [N]",
		Short: "Show a day of the program and make it the active day",
		Long: "With no arguments shows the active day. N is the 1-based day number;\n" +
			"--next and --prev step from the active day, --today jumps to the day scheduled today\n" +
			"(or the next one after it).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, active, err := currentWithActive(ctx, app)
			if err != nil {
				return err
			}

			target := active
			switch {
			case len(args) == 1:
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 || n > len(p.Schedule) {
					return fmt.Errorf("day must be a number between 1 and %d", len(p.Schedule))
				}
				target = n - 1
			case next:
				target = active + 1
			case prev:
				target = active - 1
			case today:
				target = p.DayIndexOn(app.now())
			}

			if target != active {
				if target, err = app.Programs.SetActiveDay(ctx, target); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(p, target, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&next, "next", false, "Move to the next day")
	cmd.Flags().BoolVar(&prev, "prev", false, "Move to the previous day")
	cmd.Flags().BoolVar(&today, "today", false, "Jump to today's scheduled day")
	cmd.MarkFlagsMutuallyExclusive("next", "prev", "today")

	return cmd
}

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "overview",
		Aliases: []string{"ls"},
		Short:   "Show the whole program at a glance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, active, err := currentWithActive(cmd.Context(), app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(p, active, app.now()))
			return nil
		},
	}
}
