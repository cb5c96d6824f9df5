package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferObserver(buf *bytes.Buffer) UseCaseObserver {
	return NewSlogUseCaseObserver(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestSlogUseCaseObserver_Levels(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	var buf bytes.Buffer
	svc := NewProjectService(r.projects, r.uow, newBufferObserver(&buf))

	_, err := svc.Create(ctx, domain.CreateProjectCmd{Name: "Logged"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateProjectCmd{Name: "Logged"})
	require.Error(t, err)
	err = svc.Delete(ctx, "missing")
	require.True(t, domain.IsNotFound(err))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "level=INFO")
	assert.Contains(t, lines[0], "use_case=create-project")
	assert.Contains(t, lines[0], "success=true")
	assert.Contains(t, lines[1], "level=WARN")
	assert.Contains(t, lines[1], "success=false")
	assert.Contains(t, lines[2], "level=WARN")
}

func TestSlogUseCaseObserver_PersistenceFailureIsError(t *testing.T) {
	r := setupRepos(t)

	var buf bytes.Buffer
	failUoW := &testutil.FailingUoW{DB: r.db, Match: "INSERT INTO projects", Err: errors.New("disk full")}
	svc := NewProjectService(r.projects, failUoW, newBufferObserver(&buf))

	_, err := svc.Create(context.Background(), domain.CreateProjectCmd{Name: "Doomed"})
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "disk full")
}

func TestSlogUseCaseObserver_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	obs := newBufferObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "reconcile-notes",
		Success: true,
		Fields:  map[string]any{"question_id": "q1", "notes": 2, "cleared": false},
	})

	out := buf.String()
	cleared := strings.Index(out, "cleared=")
	notes := strings.Index(out, "notes=")
	question := strings.Index(out, "question_id=")
	require.True(t, cleared > 0 && notes > 0 && question > 0, out)
	assert.Less(t, cleared, notes)
	assert.Less(t, notes, question)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
}
