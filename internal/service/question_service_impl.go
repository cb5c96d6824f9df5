package service

import (
	"context"
	"time"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/repository"
	"github.com/google/uuid"
)

type questionService struct {
	projects  repository.ProjectRepo
	questions repository.QuestionRepo
	notes     repository.NoteRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewQuestionService(
	projects repository.ProjectRepo,
	questions repository.QuestionRepo,
	notes repository.NoteRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) QuestionService {
	return &questionService{
		projects:  projects,
		questions: questions,
		notes:     notes,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *questionService) Create(ctx context.Context, cmd domain.CreateQuestionCmd) (question *domain.Question, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": cmd.ProjectID}
	defer func() { observe(ctx, s.observer, "create-question", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txQuestions := repository.NewSQLiteQuestionRepo(tx)

		if _, err := txProjects.GetByID(ctx, cmd.ProjectID); err != nil {
			return err
		}

		if _, err := txQuestions.FindByText(ctx, cmd.ProjectID, cmd.Text); err == nil {
			return domain.NewValidationError("text", domain.RuleDuplicateText,
				"a question with this text already exists in the project")
		} else if !domain.IsNotFound(err) {
			return err
		}

		var parent *domain.Question
		if cmd.ParentID != nil {
			p, err := txQuestions.GetByID(ctx, *cmd.ParentID)
			if domain.IsNotFound(err) {
				return domain.NewValidationError("parent_id", domain.RuleParentNotFound,
					"parent question %s not found", *cmd.ParentID)
			}
			if err != nil {
				return err
			}
			if p.ProjectID != cmd.ProjectID {
				return domain.NewValidationError("parent_id", domain.RuleParentCrossProj,
					"parent question must be in the same project")
			}
			parent = p
		}

		question = &domain.Question{
			ID:        uuid.New().String(),
			ProjectID: cmd.ProjectID,
			Text:      cmd.Text,
			Status:    domain.QuestionToResearch,
			Hierarchy: domain.ResolveHierarchy(parent),
			ParentID:  cmd.ParentID,
			CreatedAt: startedAt,
		}
		return txQuestions.Create(ctx, question)
	})
	if err != nil {
		return nil, persistenceErr("create question", err)
	}
	fields["question_id"] = question.ID
	fields["hierarchy"] = question.Hierarchy
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get question", err)
	}
	if q.Notes, err = s.notes.ListByQuestion(ctx, id); err != nil {
		return nil, persistenceErr("get question", err)
	}
	return q, nil
}

func (s *questionService) List(ctx context.Context, projectID string, status domain.QuestionStatus) ([]*domain.Question, error) {
	if status != "" && !domain.ValidQuestionStatuses[string(status)] {
		return nil, domain.NewValidationError("status", domain.RuleInvalidValue, "unknown status %q", status)
	}
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, persistenceErr("list questions", err)
	}
	qs, err := s.questions.List(ctx, repository.QuestionFilter{ProjectID: projectID, Status: status})
	return qs, persistenceErr("list questions", err)
}

func (s *questionService) ListAll(ctx context.Context) ([]*domain.Question, error) {
	qs, err := s.questions.List(ctx, repository.QuestionFilter{})
	return qs, persistenceErr("list questions", err)
}

func (s *questionService) ListChildren(ctx context.Context, id string) ([]*domain.Question, error) {
	if _, err := s.questions.GetByID(ctx, id); err != nil {
		return nil, persistenceErr("list child questions", err)
	}
	qs, err := s.questions.ListChildren(ctx, id)
	return qs, persistenceErr("list child questions", err)
}

// UpdateText does not re-check text uniqueness within the project.
func (s *questionService) UpdateText(ctx context.Context, cmd domain.UpdateQuestionTextCmd) (question *domain.Question, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "update-question-text", startedAt, map[string]any{"question_id": cmd.QuestionID}, err)
	}()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		if err := txQuestions.UpdateText(ctx, cmd.QuestionID, cmd.Text); err != nil {
			return err
		}
		var err error
		question, err = txQuestions.GetByID(ctx, cmd.QuestionID)
		return err
	})
	if err != nil {
		return nil, persistenceErr("update question", err)
	}
	return question, nil
}

func (s *questionService) ToggleStatus(ctx context.Context, id string) (question *domain.Question, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"question_id": id}
	defer func() { observe(ctx, s.observer, "toggle-question-status", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		q, err := txQuestions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		q.ToggleStatus()
		if err := txQuestions.UpdateStatus(ctx, id, q.Status); err != nil {
			return err
		}
		question = q
		return nil
	})
	if err != nil {
		return nil, persistenceErr("toggle question status", err)
	}
	fields["status"] = string(question.Status)
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"question_id": id}
	defer func() { observe(ctx, s.observer, "delete-question", startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txQuestions := repository.NewSQLiteQuestionRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)

		if _, err := txQuestions.GetByID(ctx, id); err != nil {
			return err
		}
		detached, err := txQuestions.DetachChildren(ctx, id)
		if err != nil {
			return err
		}
		removed, err := txNotes.DeleteByQuestion(ctx, id)
		if err != nil {
			return err
		}
		fields["children_detached"] = detached
		fields["notes_deleted"] = removed
		return txQuestions.Delete(ctx, id)
	})
	return persistenceErr("delete question", err)
}
