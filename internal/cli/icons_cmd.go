package cli

import (
	"fmt"

	"github.com/alexanderramin/grindfit/internal/cli/formatter"
	"github.com/alexanderramin/grindfit/internal/domain"
	"github.com/alexanderramin/grindfit/internal/export"
	"github.com/alexanderramin/grindfit/internal/service"
	"github.com/spf13/cobra"
)

func newIconsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Show which task category icons are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			icons, err := app.Icons.Icons(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(domain.AllTaskTypes))
			for _, t := range domain.AllTaskTypes {
				status := formatter.Dim("built-in glyph")
				if icons[t] != "" {
					status = formatter.StyleGreen.Render("generated")
				}
				rows = append(rows, []string{formatter.TaskTypeBadge(t), status})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"CATEGORY", "ICON"}, rows))
			return nil
		},
	}

	cmd.AddCommand(
		newIconsGenerateCmd(app),
		newIconsExportCmd(app),
	)
	return cmd
}

func newIconsGenerateCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Ask the model for an icon for every category that has none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := withSpinner(cmd, app, "Drawing icons…", func() (service.IconPassResult, error) {
				return app.Icons.GeneratePass(cmd.Context(), force)
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Skipped {
				printLine(out, "%s", formatter.Dim("Icon generation is already running."))
				return nil
			}
			for _, t := range res.Generated {
				printLine(out, "%s %s", formatter.StyleGreen.Render("✔"), formatter.TaskTypeBadge(t))
			}
			for _, t := range res.Empty {
				printLine(out, "%s %s %s", formatter.StyleYellow.Render("○"), formatter.TaskTypeBadge(t), formatter.Dim("no image returned"))
			}
			for _, t := range res.Failed {
				printLine(out, "%s %s %s", formatter.StyleRed.Render("✖"), formatter.TaskTypeBadge(t), formatter.Dim("failed, using built-in glyph"))
			}
			if len(res.Generated)+len(res.Empty)+len(res.Failed) == 0 {
				printLine(out, "%s", formatter.Dim("All icons are cached. Use --force to redraw them."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Regenerate icons that are already cached")
	return cmd
}

func newIconsExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export DIR",
		Short: "Write cached icons to DIR as SVG files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			icons, err := app.Icons.Icons(cmd.Context())
			if err != nil {
				return err
			}
			paths, err := export.WriteIcons(args[0], icons)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printLine(cmd.OutOrStdout(), "%s", p)
			}
			if len(paths) == 0 {
				printLine(cmd.OutOrStdout(), "%s", formatter.Dim("No icons cached yet. Run `grindfit icons generate`."))
			}
			return nil
		},
	}
}
