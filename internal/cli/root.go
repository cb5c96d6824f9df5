package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/quest/internal/config"
	"github.com/alexanderramin/quest/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and runtime settings CLI commands use.
type App struct {
	Projects  service.ProjectService
	Questions service.QuestionService
	Notes     service.NoteService
	URLs      service.URLService
	Reports   service.ReportService

	Logger *slog.Logger
	Server config.ServerConfig

	// IsInteractive reports whether stdin is a terminal. Nil means it is not.
	IsInteractive func() bool
	// EditNotes opens an editor prefilled with current and returns the edited
	// blob. Defaults to a full-screen form.
	EditNotes func(ctx context.Context, title, current string) (string, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// NewRootCmd creates the top-level "quest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "quest",
		Short:         "Organize research questions, notes and their sources",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newProjectCmd(app),
		newQuestionCmd(app),
		newNoteCmd(app),
		newURLCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)

	return root
}
