package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/cli/formatter"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes on questions",
	}

	cmd.AddCommand(
		newNoteEditCmd(app),
		newNoteAddCmd(app),
		newNoteListCmd(app),
		newNoteUpdateCmd(app),
		newNoteRemoveCmd(app),
	)

	return cmd
}

// newNoteEditCmd rewrites all of a question's notes from one text blob.
// Paragraphs whose text is unchanged keep their source; new or edited ones
// are attributed to --url.
func newNoteEditCmd(app *App) *cobra.Command {
	var file, url, title string

	cmd := &cobra.Command{
		Use:   "edit QUESTION",
		Short: "Edit all notes of a question as one text",
		Long: "Edit all notes of a question as one text, one note per paragraph.\n" +
			"Reads --file (\"-\" for stdin), piped stdin, or opens an editor on a terminal.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			q, err := app.Questions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			current := make([]string, 0, len(q.Notes))
			for _, n := range q.Notes {
				current = append(current, n.Note)
			}

			blob, err := readNotesBlob(ctx, app, cmd.InOrStdin(), file, q.Text, joinNotes(current))
			if err != nil {
				return err
			}
			c, err := domain.NewReconcileNotesCmd(id, blob, url, title)
			if err != nil {
				return err
			}
			q, err = app.Notes.Reconcile(ctx, c)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %d notes on %s\n", len(q.Notes), q.Text)
			if len(q.Notes) > 0 {
				fmt.Fprint(out, formatter.FormatNoteList(q.Notes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read notes from file (\"-\" for stdin)")
	cmd.Flags().StringVar(&url, "url", "", "Source URL for new or changed notes")
	cmd.Flags().StringVar(&title, "title", "", "Page title, stored the first time the URL is seen")

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	var url, title string

	cmd := &cobra.Command{
		Use:   "add QUESTION TEXT",
		Short: "Append one note to a question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := domain.NewAddNoteCmd(id, strings.Join(args[1:], " "), url, title)
			if err != nil {
				return err
			}
			n, err := app.Notes.Add(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added note %s\n", formatter.TruncID(n.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Source URL")
	cmd.Flags().StringVar(&title, "title", "", "Page title")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	var urlFlag string

	cmd := &cobra.Command{
		Use:   "list [QUESTION]",
		Short: "List notes of a question, or of a URL with --url",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				notes []*domain.QuestionNote
				err   error
			)
			switch {
			case urlFlag != "" && len(args) == 0:
				urlID, rerr := resolveURLID(ctx, app, urlFlag)
				if rerr != nil {
					return rerr
				}
				notes, err = app.Notes.ListByURL(ctx, urlID)
			case urlFlag == "" && len(args) == 1:
				id, rerr := resolveQuestionID(ctx, app, args[0])
				if rerr != nil {
					return rerr
				}
				notes, err = app.Notes.ListByQuestion(ctx, id)
			default:
				return fmt.Errorf("give either a QUESTION or --url")
			}
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notes found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNoteList(notes))
			return nil
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "URL ID")

	return cmd
}

func newNoteUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update NOTE TEXT",
		Short: "Replace the text of one note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := domain.NewUpdateNoteCmd(id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			n, err := app.Notes.Update(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated note %s\n", formatter.TruncID(n.ID))
			return nil
		},
	}
}

func newNoteRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove NOTE",
		Aliases: []string{"rm"},
		Short:   "Remove one note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveNoteID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Notes.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed note %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
