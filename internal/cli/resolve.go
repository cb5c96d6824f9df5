package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/quest/internal/domain"
)

// matchID resolves input against ids: an exact id wins, otherwise a unique
// prefix is accepted.
func matchID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveProjectID accepts a project name (case-insensitive), a full id, or
// an id prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return matchID("project", input, ids)
}

func resolveQuestionID(ctx context.Context, app *App, input string) (string, error) {
	questions, err := app.Questions.ListAll(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return matchID("question", input, ids)
}

func resolveURLID(ctx context.Context, app *App, input string) (string, error) {
	urls, err := app.URLs.ListAll(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(urls))
	for _, u := range urls {
		ids = append(ids, u.ID)
	}
	return matchID("url", input, ids)
}

// resolveNoteID tries input as a full id first and only then scans every
// question's notes for a prefix match.
func resolveNoteID(ctx context.Context, app *App, input string) (string, error) {
	if _, err := app.Notes.GetByID(ctx, input); err == nil {
		return input, nil
	} else if !domain.IsNotFound(err) {
		return "", err
	}

	questions, err := app.Questions.ListAll(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, q := range questions {
		notes, err := app.Notes.ListByQuestion(ctx, q.ID)
		if err != nil {
			return "", err
		}
		for _, n := range notes {
			ids = append(ids, n.ID)
		}
	}
	return matchID("note", input, ids)
}
