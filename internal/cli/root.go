package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Programs service.ProgramService
	Icons    service.IconService

	// IsInteractive reports whether stdin is a terminal. Forms and the board
	// are only offered when it returns true.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "grindfit" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "grindfit",
		Short:         "Four-week fitness planner with daily tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHome(cmd, app)
		},
	}

	root.AddCommand(
		newStartCmd(app),
		newDayCmd(app),
		newOverviewCmd(app),
		newTaskCmd(app),
		newProfileCmd(app),
		newResetCmd(app),
		newIconsCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newBoardCmd(app),
	)

	return root
}

// runHome shows the active day, or explains how to get started.
func runHome(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	state, err := app.Programs.State(ctx)
	if err != nil {
		return err
	}
	if state == domain.StateNoProgram {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("GrindFit",
			"No plan yet.\n\n"+formatter.Dim("Run ")+formatter.Bold("grindfit start")+formatter.Dim(" to build your 4-week program.")))
		return nil
	}
	p, active, err := currentWithActive(ctx, app)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDay(p, active, app.now()))
	return nil
}

func currentWithActive(ctx context.Context, app *App) (domain.Program, int, error) {
	p, err := app.Programs.Current(ctx)
	if err != nil {
		return domain.Program{}, 0, err
	}
	active, err := app.Programs.ActiveDay(ctx)
	if err != nil {
		return domain.Program{}, 0, err
	}
	return p, active, nil
}

// FriendlyError rewrites service errors into the message shown to the user.
func FriendlyError(err error) string {
	switch {
	case errors.Is(err, service.ErrGenerationFailed):
		return "failed to generate program, please try again (" + err.Error() + ")"
	case errors.Is(err, service.ErrNotConfirmed):
		return "cancelled"
	default:
		return err.Error()
	}
}

func printLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
