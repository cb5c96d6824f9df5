package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/quest/internal/domain"
)

const listTextWidth = 60

func FormatProjectList(projects []*domain.Project, now time.Time) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{Dim(TruncID(p.ID)), Bold(p.Name), RelativeDateFrom(p.CreatedAt, now)})
	}
	return RenderTable([]string{"ID", "NAME", "CREATED"}, rows)
}

func FormatQuestionList(questions []*domain.Question, now time.Time) string {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			Dim(TruncID(q.ID)),
			Truncate(q.Text, listTextWidth),
			StatusPill(q.Status),
			fmt.Sprint(q.Hierarchy),
			RelativeDateFrom(q.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "QUESTION", "STATUS", "LEVEL", "CREATED"}, rows)
}

// FormatQuestionDetail renders a question and its notes, oldest first, each
// followed by its source when attributed.
func FormatQuestionDetail(q *domain.Question, project *domain.Project, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(q.Text))
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:      "), q.ID)
	if project != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Project: "), project.Name)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:  "), StatusPill(q.Status))
	fmt.Fprintf(&b, "%s %d\n", Dim("Level:   "), q.Hierarchy)
	if q.ParentID != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Parent:  "), TruncID(*q.ParentID))
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("Created: "), RelativeDateFrom(q.CreatedAt, now))

	b.WriteString("\n" + Header("Notes") + "\n")
	if len(q.Notes) == 0 {
		b.WriteString(Dim("No notes yet.") + "\n")
		return b.String()
	}
	for i, n := range q.Notes {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatNote(n))
	}
	return b.String()
}

func formatNote(n *domain.QuestionNote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim(TruncID(n.ID)), n.Note)
	if n.URL != nil {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleBlue.Render("↳"), n.URL.DisplayTitle(), Dim(n.URL.URL))
	}
	return b.String()
}

func FormatNoteList(notes []*domain.QuestionNote) string {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		source := Dim("-")
		if n.URL != nil {
			source = Truncate(n.URL.DisplayTitle(), 40)
		}
		rows = append(rows, []string{Dim(TruncID(n.ID)), Truncate(n.Note, listTextWidth), source})
	}
	return RenderTable([]string{"ID", "NOTE", "SOURCE"}, rows)
}

func FormatURLList(urls []*domain.URLInfo, now time.Time) string {
	rows := make([][]string, 0, len(urls))
	for _, u := range urls {
		rows = append(rows, []string{
			Dim(TruncID(u.ID)),
			Truncate(u.DisplayTitle(), 40),
			u.URL,
			RelativeDateFrom(u.CreatedAt, now),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "URL", "SAVED"}, rows)
}

// FormatProjectSummary renders the project header box and its question tree.
func FormatProjectSummary(p *domain.Project, questions []*domain.Question, noteCounts map[string]int, now time.Time) string {
	finished := 0
	notes := 0
	for _, q := range questions {
		if q.Status == domain.QuestionFinished {
			finished++
		}
		notes += noteCounts[q.ID]
	}

	body := fmt.Sprintf("%s %s\n%s %s\n%s %d/%d finished\n%s %d",
		Dim("ID:       "), p.ID,
		Dim("Created:  "), RelativeDateFrom(p.CreatedAt, now),
		Dim("Questions:"), finished, len(questions),
		Dim("Notes:    "), notes,
	)
	out := RenderBox(p.Name, body) + "\n"
	if len(questions) == 0 {
		return out + Dim("No questions yet.") + "\n"
	}
	return out + "\n" + RenderTree(QuestionTreeItems(questions, noteCounts))
}
