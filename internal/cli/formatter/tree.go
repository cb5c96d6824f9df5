package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one line of a rendered question tree.
type TreeItem struct {
	Title    string
	ID       string
	Level    int
	IsLast   bool
	Finished bool
	Detail   string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree. Finished items get a green
// check and dimmed title; detail badges are right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type line struct {
		content string
		badge   string
	}
	lines := make([]line, len(items))
	widest := 0

	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.ID != "" {
			title = StyleDim.Render(TruncID(item.ID)+" ") + title
		}
		if item.Finished {
			title = StyleGreen.Render("✔ ") + Dim(title)
		}

		lines[i].content = prefix + title
		if item.Detail != "" {
			lines[i].badge = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		widest = max(widest, lipgloss.Width(lines[i].content))
	}

	var b strings.Builder
	for _, l := range lines {
		if l.badge == "" {
			b.WriteString(l.content + "\n")
			continue
		}
		pad := max(widest-lipgloss.Width(l.content), 0)
		b.WriteString(l.content + strings.Repeat(" ", pad) + "  " + l.badge + "\n")
	}
	return b.String()
}

// QuestionTreeItems flattens a project's questions into tree order. Children
// are found by parent id; questions whose parent is gone are shown as roots.
// Siblings keep the order of questions.
func QuestionTreeItems(questions []*domain.Question, noteCounts map[string]int) []TreeItem {
	byID := make(map[string]bool, len(questions))
	for _, q := range questions {
		byID[q.ID] = true
	}
	children := make(map[string][]*domain.Question)
	var roots []*domain.Question
	for _, q := range questions {
		if q.ParentID != nil && byID[*q.ParentID] {
			children[*q.ParentID] = append(children[*q.ParentID], q)
			continue
		}
		roots = append(roots, q)
	}

	var items []TreeItem
	var walk func(qs []*domain.Question, level int)
	walk = func(qs []*domain.Question, level int) {
		for i, q := range qs {
			item := TreeItem{
				Title:    q.Text,
				ID:       q.ID,
				Level:    level,
				IsLast:   i == len(qs)-1,
				Finished: q.Status == domain.QuestionFinished,
			}
			if n := noteCounts[q.ID]; n > 0 {
				item.Detail = pluralize(n, "note")
			}
			items = append(items, item)
			walk(children[q.ID], level+1)
		}
	}
	walk(roots, 0)
	return items
}
