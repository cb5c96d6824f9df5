// Package export renders a project's questions and notes as Markdown.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/quest/internal/domain"
)

const (
	noteSeparator = "\n\n--------\n"
	emptyNotes    = "\nNo notes yet."
	stampLayout   = "2006-01-02 15:04:05"
)

// Markdown writes the project as a level-1 heading followed by one level-2
// heading per question. Questions and notes are written in the order given;
// callers pass them newest first.
func Markdown(w io.Writer, project *domain.Project, questions []*domain.Question, exportedAt time.Time) error {
	blocks := make([]string, 0, 1+2*len(questions))
	blocks = append(blocks, fmt.Sprintf("# %s\n\nExported on %s\n", project.Name, exportedAt.Format(stampLayout)))

	for _, q := range questions {
		blocks = append(blocks, "\n## "+q.Text)
		if len(q.Notes) == 0 {
			blocks = append(blocks, emptyNotes)
			continue
		}
		rendered := make([]string, 0, len(q.Notes))
		for _, n := range q.Notes {
			rendered = append(rendered, renderNote(n))
		}
		blocks = append(blocks, strings.Join(rendered, noteSeparator))
	}

	_, err := io.WriteString(w, strings.Join(blocks, "\n"))
	return err
}

func renderNote(n *domain.QuestionNote) string {
	text := strings.TrimSpace(n.Note)
	if n.URL == nil || n.URL.URL == "" {
		return text
	}
	return fmt.Sprintf("%s\nURL: [%s](%s)", text, n.URL.DisplayTitle(), n.URL.URL)
}

// FileName returns the default export file name for a project.
func FileName(project *domain.Project, exportedAt time.Time) string {
	return fmt.Sprintf("project_%s_export_%s.md", slug(project.Name), exportedAt.Format("20060102_150405"))
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "project"
	}
	return out
}
