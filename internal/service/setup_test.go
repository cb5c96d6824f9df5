package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/lock"
	"github.com/alexanderramin/quest/internal/repository"
	"github.com/alexanderramin/quest/internal/testutil"
)

type testRepos struct {
	db        *sql.DB
	projects  *repository.SQLiteProjectRepo
	questions *repository.SQLiteQuestionRepo
	notes     *repository.SQLiteNoteRepo
	urls      *repository.SQLiteURLInfoRepo
	uow       db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	return reposFor(testutil.NewTestDB(t))
}

func reposFor(database *sql.DB) testRepos {
	return testRepos{
		db:        database,
		projects:  repository.NewSQLiteProjectRepo(database),
		questions: repository.NewSQLiteQuestionRepo(database),
		notes:     repository.NewSQLiteNoteRepo(database),
		urls:      repository.NewSQLiteURLInfoRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

func (r testRepos) projectService(uow db.UnitOfWork) ProjectService {
	return NewProjectService(r.projects, uow)
}

func (r testRepos) questionService(uow db.UnitOfWork) QuestionService {
	return NewQuestionService(r.projects, r.questions, r.notes, uow)
}

func (r testRepos) noteService(uow db.UnitOfWork) NoteService {
	return NewNoteService(r.questions, r.notes, r.urls, uow, lock.NewKeyedMutex())
}

func (r testRepos) urlService(uow db.UnitOfWork) URLService {
	return NewURLService(r.projects, r.urls, uow)
}
