package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alexanderramin/quest/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project as Markdown",
		Long: "Export a project as Markdown. Without -o the file is written to the\n" +
			"current directory under a timestamped name; -o - writes to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			report, err := app.Reports.ProjectReport(ctx, projectID)
			if err != nil {
				return err
			}

			now := app.now()
			if output == "-" {
				return export.Markdown(cmd.OutOrStdout(), report.Project, report.Questions, now)
			}

			var buf bytes.Buffer
			if err := export.Markdown(&buf, report.Project, report.Questions, now); err != nil {
				return err
			}
			path := output
			if path == "" {
				path = export.FileName(report.Project, now)
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions, %d notes to %s\n",
				len(report.Questions), report.CountNotes(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (\"-\" for stdout)")

	return cmd
}
