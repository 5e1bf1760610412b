package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Create your profile and generate a 4-week program",
		Long: "Collects your profile and asks the model for a progressive 4-week plan.\n" +
			"Pass every profile flag to skip the interactive form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			state, err := app.Programs.State(ctx)
			if err != nil {
				return err
			}
			if state != domain.StateNoProgram {
				return fmt.Errorf("you already have a plan; use `grindfit profile update` to change it or `grindfit reset` to start over")
			}

			profile, err := collectProfile(cmd, app, &flags)
			if err != nil {
				return err
			}

			p, err := withSpinner(cmd, app, "Building your 4-week program…", func() (domain.Program, error) {
				return app.Programs.Generate(ctx, profile)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printLine(out, "%s %s", formatter.StyleGreen.Render("✔"),
				fmt.Sprintf("Welcome, %s. Your plan has %s.", p.UserProfile.Name, formatter.Plural(len(p.Schedule), "day", "days")))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatDay(p, 0, app.now()))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

// collectProfile uses the flags when they are complete, otherwise runs the
// onboarding form prefilled with whatever was given.
func collectProfile(cmd *cobra.Command, app *App, flags *profileFlags) (domain.UserProfile, error) {
	if flags.complete() {
		return flags.profile(), nil
	}
	if !app.interactive() {
		return domain.UserProfile{}, fmt.Errorf("missing profile flags: %s", strings.Join(missingProfileFlags(flags), ", "))
	}
	in := newOnboardingInput(flags.profile())
	if err := onboardingForm(in, app.now()).RunWithContext(cmd.Context()); err != nil {
		return domain.UserProfile{}, err
	}
	return in.profile(), nil
}

func missingProfileFlags(f *profileFlags) []string {
	var missing []string
	check := func(ok bool, name string) {
		if !ok {
			missing = append(missing, "--"+name)
		}
	}
	check(f.name != "", "name")
	check(f.gender != "", "gender")
	check(f.birthYear != 0, "birth-year")
	check(f.country != "", "country")
	check(f.goal != "", "goal")
	check(f.level != "", "level")
	check(f.daysPerWeek != 0, "days")
	return missing
}

// withSpinner runs fn behind a spinner when attached to a terminal.
func withSpinner[T any](cmd *cobra.Command, app *App, msg string, fn func() (T, error)) (T, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
		defer stop()
	}
	return fn()
}
