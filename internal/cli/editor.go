package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/quest/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func questHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// editNotesForm opens a multi-line text form prefilled with current.
func editNotesForm(ctx context.Context, title, current string) (string, error) {
	value := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("One note per paragraph. Separate notes with a blank line.").
				Lines(16).
				CharLimit(0).
				Value(&value),
		),
	).WithTheme(questHuhTheme())
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return value, nil
}

// joinNotes renders notes as the blob the editor starts from.
func joinNotes(texts []string) string {
	return strings.Join(texts, "\n\n")
}

// readNotesBlob picks the note source: an explicit file ("-" for stdin),
// piped stdin, or the interactive editor.
func readNotesBlob(ctx context.Context, app *App, in io.Reader, file, title, current string) (string, error) {
	switch {
	case file == "-":
		return readAll(in)
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading notes file: %w", err)
		}
		return string(raw), nil
	case app.interactive():
		edit := app.EditNotes
		if edit == nil {
			edit = editNotesForm
		}
		return edit(ctx, title, current)
	default:
		return readAll(in)
	}
}

func readAll(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading notes from stdin: %w", err)
	}
	return string(raw), nil
}
