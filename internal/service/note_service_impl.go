package service

import (
	"context"
	"time"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/lock"
	"github.com/alexanderramin/quest/internal/reconcile"
	"github.com/alexanderramin/quest/internal/repository"
)

type noteService struct {
	questions repository.QuestionRepo
	notes     repository.NoteRepo
	urls      repository.URLInfoRepo
	uow       db.UnitOfWork
	locker    lock.Locker
	observer  UseCaseObserver
}

// NewNoteService wires the note use cases. A nil locker falls back to an
// in-process KeyedMutex.
func NewNoteService(
	questions repository.QuestionRepo,
	notes repository.NoteRepo,
	urls repository.URLInfoRepo,
	uow db.UnitOfWork,
	locker lock.Locker,
	observers ...UseCaseObserver,
) NoteService {
	if locker == nil {
		locker = lock.NewKeyedMutex()
	}
	return &noteService{
		questions: questions,
		notes:     notes,
		urls:      urls,
		uow:       uow,
		locker:    locker,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func questionLockKey(id string) string {
	return "question:" + id
}

func (s *noteService) Reconcile(ctx context.Context, cmd domain.ReconcileNotesCmd) (question *domain.Question, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"question_id": cmd.QuestionID}
	defer func() { observe(ctx, s.observer, "reconcile-notes", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, questionLockKey(cmd.QuestionID))
	if err != nil {
		return nil, persistenceErr("lock question", err)
	}
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)
		txURLs := repository.NewSQLiteURLInfoRepo(tx)

		q, err := txQuestions.GetByID(ctx, cmd.QuestionID)
		if err != nil {
			return err
		}

		now := nowUTC()
		var currentURLID *string
		if cmd.CurrentURL != nil {
			u, created, err := txURLs.GetOrCreate(ctx, newURLInfo(q.ProjectID, cmd.CurrentURL, now))
			if err != nil {
				return err
			}
			currentURLID = &u.ID
			fields["url_created"] = created
		}

		existing, err := txNotes.ListByQuestion(ctx, q.ID)
		if err != nil {
			return err
		}

		drafts := reconcile.Reconcile(domain.Drafts(existing), cmd.RawNotes, currentURLID)
		replacement := make([]*domain.QuestionNote, 0, len(drafts))
		for _, d := range drafts {
			replacement = append(replacement, newNote(q.ID, d.URLID, d.Text, now))
		}
		if err := txNotes.ReplaceForQuestion(ctx, q.ID, replacement); err != nil {
			return err
		}
		fields["notes_before"] = len(existing)
		fields["notes_after"] = len(replacement)

		if q.Notes, err = txNotes.ListByQuestion(ctx, q.ID); err != nil {
			return err
		}
		question = q
		return nil
	})
	if err != nil {
		return nil, persistenceErr("reconcile notes", err)
	}
	return question, nil
}

func (s *noteService) Add(ctx context.Context, cmd domain.AddNoteCmd) (note *domain.QuestionNote, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"question_id": cmd.QuestionID}
	defer func() { observe(ctx, s.observer, "add-note", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)
		txURLs := repository.NewSQLiteURLInfoRepo(tx)

		q, err := txQuestions.GetByID(ctx, cmd.QuestionID)
		if err != nil {
			return err
		}

		now := nowUTC()
		var urlID *string
		if cmd.URL != nil {
			u, _, err := txURLs.GetOrCreate(ctx, newURLInfo(q.ProjectID, cmd.URL, now))
			if err != nil {
				return err
			}
			urlID = &u.ID
		}

		n := newNote(q.ID, urlID, cmd.Note, now)
		if err := txNotes.Create(ctx, n); err != nil {
			return err
		}
		note, err = txNotes.GetByID(ctx, n.ID)
		return err
	})
	if err != nil {
		return nil, persistenceErr("add note", err)
	}
	fields["note_id"] = note.ID
	return note, nil
}

// SaveURL registers the URL (when given) in the project and, when a note is
// given, appends it to the question attributed to that URL. The question must
// belong to the project.
func (s *noteService) SaveURL(ctx context.Context, cmd domain.SaveURLCmd) (result *SaveURLResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": cmd.ProjectID, "question_id": cmd.QuestionID}
	defer func() { observe(ctx, s.observer, "save-url", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)
		txURLs := repository.NewSQLiteURLInfoRepo(tx)

		if _, err := txProjects.GetByID(ctx, cmd.ProjectID); err != nil {
			return err
		}

		now := nowUTC()
		res := &SaveURLResult{}
		var urlID *string
		if cmd.URL != nil {
			u, created, err := txURLs.GetOrCreate(ctx, newURLInfo(cmd.ProjectID, cmd.URL, now))
			if err != nil {
				return err
			}
			res.URLInfo = u
			urlID = &u.ID
			fields["url_created"] = created
		}

		if cmd.Note != "" {
			q, err := txQuestions.GetByID(ctx, cmd.QuestionID)
			if err != nil {
				return err
			}
			if q.ProjectID != cmd.ProjectID {
				return domain.NewValidationError("question_id", domain.RuleInvalidValue,
					"question belongs to a different project")
			}
			n := newNote(q.ID, urlID, cmd.Note, now)
			if err := txNotes.Create(ctx, n); err != nil {
				return err
			}
			if res.Note, err = txNotes.GetByID(ctx, n.ID); err != nil {
				return err
			}
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, persistenceErr("save url", err)
	}
	return result, nil
}

// AddToURL appends a note attributed to an existing URL. The URL and the
// question must share a project.
func (s *noteService) AddToURL(ctx context.Context, cmd domain.AddURLNoteCmd) (note *domain.QuestionNote, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"url_id": cmd.URLID, "question_id": cmd.QuestionID}
	defer func() { observe(ctx, s.observer, "add-url-note", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)
		txURLs := repository.NewSQLiteURLInfoRepo(tx)

		u, err := txURLs.GetByID(ctx, cmd.URLID)
		if err != nil {
			return err
		}
		q, err := txQuestions.GetByID(ctx, cmd.QuestionID)
		if err != nil {
			return err
		}
		if q.ProjectID != u.ProjectID {
			return domain.NewValidationError("question_id", domain.RuleInvalidValue,
				"question and url belong to different projects")
		}

		n := newNote(q.ID, &u.ID, cmd.Note, nowUTC())
		if err := txNotes.Create(ctx, n); err != nil {
			return err
		}
		note, err = txNotes.GetByID(ctx, n.ID)
		return err
	})
	if err != nil {
		return nil, persistenceErr("add url note", err)
	}
	return note, nil
}

func (s *noteService) GetByID(ctx context.Context, id string) (*domain.QuestionNote, error) {
	n, err := s.notes.GetByID(ctx, id)
	return n, persistenceErr("get note", err)
}

func (s *noteService) Update(ctx context.Context, cmd domain.UpdateNoteCmd) (note *domain.QuestionNote, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "update-note", startedAt, map[string]any{"note_id": cmd.NoteID}, err)
	}()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		if err := txNotes.UpdateText(ctx, cmd.NoteID, cmd.Note); err != nil {
			return err
		}
		var err error
		note, err = txNotes.GetByID(ctx, cmd.NoteID)
		return err
	})
	if err != nil {
		return nil, persistenceErr("update note", err)
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "delete-note", startedAt, map[string]any{"note_id": id}, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteNoteRepo(tx).Delete(ctx, id)
	})
	return persistenceErr("delete note", err)
}

func (s *noteService) ListByQuestion(ctx context.Context, questionID string) ([]*domain.QuestionNote, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, persistenceErr("list notes", err)
	}
	ns, err := s.notes.ListByQuestion(ctx, questionID)
	return ns, persistenceErr("list notes", err)
}

func (s *noteService) ListByURL(ctx context.Context, urlID string) ([]*domain.QuestionNote, error) {
	if _, err := s.urls.GetByID(ctx, urlID); err != nil {
		return nil, persistenceErr("list url notes", err)
	}
	ns, err := s.notes.ListByURL(ctx, urlID)
	return ns, persistenceErr("list url notes", err)
}
