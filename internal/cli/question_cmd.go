package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/cli/formatter"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/spf13/cobra"
)

func newQuestionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "question",
		Aliases: []string{"q"},
		Short:   "Manage research questions",
	}

	cmd.AddCommand(
		newQuestionAddCmd(app),
		newQuestionListCmd(app),
		newQuestionShowCmd(app),
		newQuestionEditCmd(app),
		newQuestionToggleCmd(app),
		newQuestionChildrenCmd(app),
		newQuestionRemoveCmd(app),
	)

	return cmd
}

func newQuestionAddCmd(app *App) *cobra.Command {
	var projectFlag, parentFlag string

	cmd := &cobra.Command{
		Use:   "add TEXT",
		Short: "Add a question to a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			var parentID *string
			if parentFlag != "" {
				id, err := resolveQuestionID(ctx, app, parentFlag)
				if err != nil {
					return err
				}
				parentID = &id
			}

			c, err := domain.NewCreateQuestionCmd(projectID, strings.Join(args, " "), parentID)
			if err != nil {
				return err
			}
			q, err := app.Questions.Create(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added question %s [%s] at level %d\n", q.Text, formatter.TruncID(q.ID), q.Hierarchy)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project name or ID")
	cmd.Flags().StringVar(&parentFlag, "parent", "", "Parent question ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newQuestionListCmd(app *App) *cobra.Command {
	var projectFlag, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				questions []*domain.Question
				err       error
			)
			if projectFlag == "" {
				if status != "" {
					return fmt.Errorf("--status requires --project")
				}
				questions, err = app.Questions.ListAll(ctx)
			} else {
				projectID, rerr := resolveProjectID(ctx, app, projectFlag)
				if rerr != nil {
					return rerr
				}
				questions, err = app.Questions.List(ctx, projectID, domain.QuestionStatus(status))
			}
			if err != nil {
				return err
			}

			if len(questions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No questions found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestionList(questions, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectFlag, "project", "p", "", "Project name or ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (to_research|finished)")

	return cmd
}

func newQuestionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show QUESTION",
		Short: "Show a question with its notes",
		Args:  cobra.ExactArgs(1),
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
			p, err := app.Projects.GetByID(ctx, q.ProjectID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestionDetail(q, p, app.now()))
			return nil
		},
	}
}

func newQuestionEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit QUESTION TEXT",
		Short: "Change a question's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := domain.NewUpdateQuestionTextCmd(id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			q, err := app.Questions.UpdateText(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated question %s\n", q.Text)
			return nil
		},
	}
}

func newQuestionToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle QUESTION",
		Short: "Flip a question between to_research and finished",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			q, err := app.Questions.ToggleStatus(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", q.Text, q.Status)
			return nil
		},
	}
}

func newQuestionChildrenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "children QUESTION",
		Short: "List the direct sub-questions of a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			children, err := app.Questions.ListChildren(ctx, id)
			if err != nil {
				return err
			}
			if len(children) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sub-questions.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestionList(children, app.now()))
			return nil
		},
	}
}

func newQuestionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove QUESTION",
		Aliases: []string{"rm"},
		Short:   "Remove a question and its notes; sub-questions are kept",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveQuestionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Questions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed question %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
