package cli

import (
	"fmt"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change your profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(app),
		newProfileUpdateCmd(app),
	)

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Programs.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(p.UserProfile, app.now()))
			return nil
		},
	}
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var (
		flags profileFlags
		yes   bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields",
		Long: "Name, gender, birth year and country are updated in place.\n" +
			"Changing goal, level or days per week regenerates the whole plan and\n" +
			"discards progress, so it asks for confirmation first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current, err := app.Programs.Current(ctx)
			if err != nil {
				return err
			}

			next := flags.overlay(cmd.Flags(), current.UserProfile)
			if cmd.Flags().NFlag() == 0 || (yes && cmd.Flags().NFlag() == 1) {
				if !app.interactive() {
					return fmt.Errorf("nothing to update; pass one or more profile flags")
				}
				in := newOnboardingInput(current.UserProfile)
				if err := onboardingForm(in, app.now()).RunWithContext(ctx); err != nil {
					return err
				}
				next = in.profile()
			}
			next = next.Normalize()

			confirmer := newConfirmer(cmd, app, yes)
			update := func() (service.ProfileUpdate, error) {
				return app.Programs.UpdateProfile(ctx, next, confirmer)
			}
			var res service.ProfileUpdate
			if current.UserProfile.IsStructuralChange(next) {
				// Ask before the spinner starts drawing over the prompt.
				ok, err := confirmer.Confirm(ctx, service.StructuralChangePrompt)
				if err != nil {
					return err
				}
				if !ok {
					return service.ErrNotConfirmed
				}
				confirmer = service.AutoConfirm(true)
				res, err = withSpinner(cmd, app, "Regenerating your program…", update)
				if err != nil {
					return err
				}
			} else if res, err = update(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Regenerated {
				printLine(out, "%s New plan generated with %s.", formatter.StyleGreen.Render("✔"),
					formatter.Plural(len(res.Program.Schedule), "day", "days"))
			} else {
				printLine(out, "%s Profile updated.", formatter.StyleGreen.Render("✔"))
			}
			fmt.Fprint(out, formatter.FormatProfile(res.Program.UserProfile, app.now()))
			return nil
		},
	}

	flags.register(cmd.Flags())
	addYesFlag(cmd, &yes)
	return cmd
}
