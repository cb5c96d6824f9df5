package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/cli/formatter"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/spf13/cobra"
)

func newURLCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Manage visited pages",
	}

	cmd.AddCommand(
		newURLListCmd(app),
		newURLSaveCmd(app),
		newURLNoteCmd(app),
	)

	return cmd
}

func newURLListCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved URLs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				urls []*domain.URLInfo
				err  error
			)
			if projectFlag == "" {
				urls, err = app.URLs.ListAll(ctx)
			} else {
				projectID, rerr := resolveProjectID(ctx, app, projectFlag)
				if rerr != nil {
					return rerr
				}
				urls, err = app.URLs.ListByProject(ctx, projectID)
			}
			if err != nil {
				return err
			}

			if len(urls) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No URLs found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatURLList(urls, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project name or ID")

	return cmd
}

func newURLSaveCmd(app *App) *cobra.Command {
	var projectFlag, questionFlag, title, note string

	cmd := &cobra.Command{
		Use:   "save URL",
		Short: "Save a visited page, optionally with a note for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			questionID, err := resolveQuestionID(ctx, app, questionFlag)
			if err != nil {
				return err
			}
			c, err := domain.NewSaveURLCmd(projectID, questionID, args[0], title, note)
			if err != nil {
				return err
			}
			res, err := app.Notes.SaveURL(ctx, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.URLInfo != nil {
				fmt.Fprintf(out, "Saved %s [%s]\n", res.URLInfo.DisplayTitle(), formatter.TruncID(res.URLInfo.ID))
			}
			if res.Note != nil {
				fmt.Fprintf(out, "Added note %s\n", formatter.TruncID(res.Note.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project name or ID")
	cmd.Flags().StringVarP(&questionFlag, "question", "q", "", "Question ID")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&note, "note", "", "Note to attach to the question")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}

func newURLNoteCmd(app *App) *cobra.Command {
	var questionFlag string

	cmd := &cobra.Command{
		Use:   "note URL_ID TEXT",
		Short: "Add a note to a question, sourced from a saved URL",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			urlID, err := resolveURLID(ctx, app, args[0])
			if err != nil {
				return err
			}
			questionID, err := resolveQuestionID(ctx, app, questionFlag)
			if err != nil {
				return err
			}
			c, err := domain.NewAddURLNoteCmd(urlID, questionID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			n, err := app.Notes.AddToURL(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %s\n", formatter.TruncID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&questionFlag, "question", "q", "", "Question ID")
	_ = cmd.MarkFlagRequired("question")

	return cmd
}
