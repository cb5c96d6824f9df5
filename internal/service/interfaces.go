package service

import (
	"context"

	"github.com/alexanderramin/quest/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, cmd domain.CreateProjectCmd) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

type QuestionService interface {
	Create(ctx context.Context, cmd domain.CreateQuestionCmd) (*domain.Question, error)
	// GetByID returns the question with its notes, oldest first.
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	// List returns a project's questions newest first. An empty status
	// matches every status.
	List(ctx context.Context, projectID string, status domain.QuestionStatus) ([]*domain.Question, error)
	ListAll(ctx context.Context) ([]*domain.Question, error)
	ListChildren(ctx context.Context, id string) ([]*domain.Question, error)
	UpdateText(ctx context.Context, cmd domain.UpdateQuestionTextCmd) (*domain.Question, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Question, error)
	// Delete removes the question and its notes. Children are detached and
	// keep their hierarchy.
	Delete(ctx context.Context, id string) error
}

// SaveURLResult is the outcome of NoteService.SaveURL. Either field may be
// nil when the corresponding input was omitted.
type SaveURLResult struct {
	Note    *domain.QuestionNote
	URLInfo *domain.URLInfo
}

type NoteService interface {
	// Reconcile replaces the question's notes from a raw text blob, keeping
	// URL attribution for paragraphs whose text is unchanged. Calls for the
	// same question are serialized.
	Reconcile(ctx context.Context, cmd domain.ReconcileNotesCmd) (*domain.Question, error)
	Add(ctx context.Context, cmd domain.AddNoteCmd) (*domain.QuestionNote, error)
	SaveURL(ctx context.Context, cmd domain.SaveURLCmd) (*SaveURLResult, error)
	AddToURL(ctx context.Context, cmd domain.AddURLNoteCmd) (*domain.QuestionNote, error)
	GetByID(ctx context.Context, id string) (*domain.QuestionNote, error)
	Update(ctx context.Context, cmd domain.UpdateNoteCmd) (*domain.QuestionNote, error)
	Delete(ctx context.Context, id string) error
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.QuestionNote, error)
	ListByURL(ctx context.Context, urlID string) ([]*domain.QuestionNote, error)
}

type URLService interface {
	// GetOrCreate registers url in the project. A repeat call returns the
	// stored record and ignores title.
	GetOrCreate(ctx context.Context, projectID, url, title string) (*domain.URLInfo, error)
	GetByID(ctx context.Context, id string) (*domain.URLInfo, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.URLInfo, error)
	ListAll(ctx context.Context) ([]*domain.URLInfo, error)
}

// ProjectReport is a read-only snapshot of a project for export: questions
// newest first, each carrying its notes newest first joined with their URL.
type ProjectReport struct {
	Project   *domain.Project
	Questions []*domain.Question
}

type ReportService interface {
	ProjectReport(ctx context.Context, projectID string) (*ProjectReport, error)
}
