package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteFixture struct {
	testRepos
	project  *domain.Project
	question *domain.Question
}

func setupNoteFixture(t *testing.T, r testRepos) noteFixture {
	t.Helper()
	ctx := context.Background()
	f := noteFixture{testRepos: r, project: testutil.NewTestProject("Notes")}
	require.NoError(t, r.projects.Create(ctx, f.project))
	f.question = testutil.NewTestQuestion(f.project.ID, "What is reconciliation?")
	require.NoError(t, r.questions.Create(ctx, f.question))
	return f
}

func noteTexts(notes []*domain.QuestionNote) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Note)
	}
	return out
}

func noteURL(n *domain.QuestionNote) string {
	if n.URL == nil {
		return ""
	}
	return n.URL.URL
}

func reconcileCmd(t *testing.T, questionID, raw, url, title string) domain.ReconcileNotesCmd {
	t.Helper()
	cmd, err := domain.NewReconcileNotesCmd(questionID, raw, url, title)
	require.NoError(t, err)
	return cmd
}

func TestNoteService_Reconcile_PreservesAttribution(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	q, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "note a", "https://one.test", "One"))
	require.NoError(t, err)
	require.Len(t, q.Notes, 1)
	assert.Equal(t, "https://one.test", noteURL(q.Notes[0]))

	q, err = svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "note a\n\nnote b", "https://two.test", "Two"))
	require.NoError(t, err)
	require.Len(t, q.Notes, 2)
	assert.Equal(t, []string{"note a", "note b"}, noteTexts(q.Notes))
	assert.Equal(t, "https://one.test", noteURL(q.Notes[0]))
	assert.Equal(t, "https://two.test", noteURL(q.Notes[1]))
	assert.Equal(t, "Two", q.Notes[1].URL.Title)
}

func TestNoteService_Reconcile_EditedNoteTakesCurrentURL(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	_, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "alpha\n\nbeta", "https://one.test", ""))
	require.NoError(t, err)

	q, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "alpha\n\nbeta, revised", "", ""))
	require.NoError(t, err)
	require.Len(t, q.Notes, 2)
	assert.Equal(t, "https://one.test", noteURL(q.Notes[0]))
	assert.Nil(t, q.Notes[1].URLID, "edited note with no current url is unattributed")
}

func TestNoteService_Reconcile_ReusesURLAndIgnoresNewTitle(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	_, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "x", "https://one.test", "First title"))
	require.NoError(t, err)
	_, err = svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "x\n\ny", "https://one.test", "Second title"))
	require.NoError(t, err)

	urls, err := f.urls.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "First title", urls[0].Title)
}

func TestNoteService_Reconcile_EmptyBlobClearsNotes(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	_, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "one\n\ntwo", "", ""))
	require.NoError(t, err)

	q, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "\n\n  \n", "", ""))
	require.NoError(t, err)
	assert.Empty(t, q.Notes)

	stored, err := f.notes.ListByQuestion(ctx, f.question.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestNoteService_Reconcile_UnknownQuestion(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	_, err := svc.Reconcile(ctx, reconcileCmd(t, "missing", "text", "https://one.test", ""))
	assert.True(t, domain.IsNotFound(err))

	urls, err := f.urls.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestNoteService_Reconcile_RollbackOnInsertFailure(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()

	u := testutil.NewTestURL(f.project.ID, "https://old.test", "")
	_, _, err := f.urls.GetOrCreate(ctx, u)
	require.NoError(t, err)
	original := testutil.NewTestNote(f.question.ID, "original", testutil.WithURL(u))
	require.NoError(t, f.notes.Create(ctx, original))

	injected := errors.New("injected insert failure")
	failUoW := &testutil.FailingUoW{DB: f.db, Match: "INSERT INTO question_notes", Err: injected}
	svc := f.noteService(failUoW)

	_, err = svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "replacement", "https://new.test", ""))
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)
	var pe *domain.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "reconcile notes", pe.Op)

	notes, err := f.notes.ListByQuestion(ctx, f.question.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1, "delete must be rolled back")
	assert.Equal(t, "original", notes[0].Note)

	_, err = f.urls.GetByURL(ctx, f.project.ID, "https://new.test")
	assert.True(t, domain.IsNotFound(err), "url insert must be rolled back")
}

func TestNoteService_Reconcile_ConcurrentSameQuestion(t *testing.T) {
	f := setupNoteFixture(t, reposFor(testutil.NewFileTestDB(t)))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	const writers = 6
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw := fmt.Sprintf("shared\n\nwriter %d first\n\nwriter %d second", i, i)
			cmd, err := domain.NewReconcileNotesCmd(f.question.ID, raw, fmt.Sprintf("https://w%d.test", i), "")
			if err != nil {
				errs <- err
				return
			}
			_, err = svc.Reconcile(ctx, cmd)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	notes, err := f.notes.ListByQuestion(ctx, f.question.ID)
	require.NoError(t, err)
	require.Len(t, notes, 3, "exactly one writer's set survives")
	assert.Equal(t, "shared", notes[0].Note)
	assert.True(t, strings.HasSuffix(notes[1].Note, "first"))
	assert.True(t, strings.HasSuffix(notes[2].Note, "second"))
	assert.Equal(t, strings.TrimSuffix(notes[1].Note, " first"), strings.TrimSuffix(notes[2].Note, " second"))
}

func TestNoteService_Add(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	cmd, err := domain.NewAddNoteCmd(f.question.ID, " observed ", "https://a.test", "A")
	require.NoError(t, err)
	n, err := svc.Add(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "observed", n.Note)
	require.NotNil(t, n.URL)
	assert.Equal(t, "A", n.URL.Title)

	cmd, err = domain.NewAddNoteCmd(f.question.ID, "plain", "", "")
	require.NoError(t, err)
	n, err = svc.Add(ctx, cmd)
	require.NoError(t, err)
	assert.Nil(t, n.URLID)

	_, err = domain.NewAddNoteCmd(f.question.ID, "  ", "", "")
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	_, err = svc.Add(ctx, domain.AddNoteCmd{QuestionID: "missing", Note: "x"})
	assert.True(t, domain.IsNotFound(err))
}

func TestNoteService_SaveURL(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	t.Run("url and note", func(t *testing.T) {
		cmd, err := domain.NewSaveURLCmd(f.project.ID, f.question.ID, "https://page.test", "Page", "quote")
		require.NoError(t, err)
		res, err := svc.SaveURL(ctx, cmd)
		require.NoError(t, err)
		require.NotNil(t, res.URLInfo)
		require.NotNil(t, res.Note)
		assert.Equal(t, res.URLInfo.ID, *res.Note.URLID)
	})

	t.Run("url only", func(t *testing.T) {
		cmd, err := domain.NewSaveURLCmd(f.project.ID, f.question.ID, "https://page.test", "Ignored", "")
		require.NoError(t, err)
		res, err := svc.SaveURL(ctx, cmd)
		require.NoError(t, err)
		assert.Nil(t, res.Note)
		assert.Equal(t, "Page", res.URLInfo.Title)
	})

	t.Run("note only", func(t *testing.T) {
		cmd, err := domain.NewSaveURLCmd(f.project.ID, f.question.ID, "", "", "loose thought")
		require.NoError(t, err)
		res, err := svc.SaveURL(ctx, cmd)
		require.NoError(t, err)
		assert.Nil(t, res.URLInfo)
		assert.Nil(t, res.Note.URLID)
	})

	t.Run("question required", func(t *testing.T) {
		_, err := domain.NewSaveURLCmd(f.project.ID, "", "https://x.test", "", "")
		ve, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "question_id", ve.Field)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := svc.SaveURL(ctx, domain.SaveURLCmd{ProjectID: "missing", QuestionID: f.question.ID})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("question from another project", func(t *testing.T) {
		other := testutil.NewTestProject("Other")
		require.NoError(t, f.projects.Create(ctx, other))
		cmd, err := domain.NewSaveURLCmd(other.ID, f.question.ID, "https://other.test", "", "note")
		require.NoError(t, err)
		_, err = svc.SaveURL(ctx, cmd)
		_, ok := domain.AsValidation(err)
		assert.True(t, ok)

		_, err = f.urls.GetByURL(ctx, other.ID, "https://other.test")
		assert.True(t, domain.IsNotFound(err), "url must not survive a rejected save")
	})
}

func TestNoteService_AddToURL(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	u := testutil.NewTestURL(f.project.ID, "https://a.test", "")
	_, _, err := f.urls.GetOrCreate(ctx, u)
	require.NoError(t, err)

	cmd, err := domain.NewAddURLNoteCmd(u.ID, f.question.ID, "from url")
	require.NoError(t, err)
	n, err := svc.AddToURL(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, u.ID, *n.URLID)

	byURL, err := svc.ListByURL(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, byURL, 1)

	_, err = svc.AddToURL(ctx, domain.AddURLNoteCmd{URLID: "missing", QuestionID: f.question.ID, Note: "x"})
	assert.True(t, domain.IsNotFound(err))
	_, err = svc.ListByURL(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestNoteService_UpdateAndDelete(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	n := testutil.NewTestNote(f.question.ID, "draft")
	require.NoError(t, f.notes.Create(ctx, n))

	cmd, err := domain.NewUpdateNoteCmd(n.ID, "final")
	require.NoError(t, err)
	updated, err := svc.Update(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Note)

	_, err = domain.NewUpdateNoteCmd(n.ID, "")
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, n.ID))
	_, err = svc.GetByID(ctx, n.ID)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, domain.IsNotFound(svc.Delete(ctx, n.ID)))

	_, err = svc.Update(ctx, domain.UpdateNoteCmd{NoteID: n.ID, Note: "x"})
	assert.True(t, domain.IsNotFound(err))
}

func TestNoteService_ListByQuestion(t *testing.T) {
	f := setupNoteFixture(t, setupRepos(t))
	ctx := context.Background()
	svc := f.noteService(f.uow)

	_, err := svc.Reconcile(ctx, reconcileCmd(t, f.question.ID, "a\n\nb", "", ""))
	require.NoError(t, err)

	notes, err := svc.ListByQuestion(ctx, f.question.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, noteTexts(notes))

	_, err = svc.ListByQuestion(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}
