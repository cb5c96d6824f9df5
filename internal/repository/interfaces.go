package repository

import (
	"context"

	"github.com/alexanderramin/quest/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByName(ctx context.Context, name string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// URLInfoRepo is the per-project URL registry.
type URLInfoRepo interface {
	// GetOrCreate returns the record for (candidate.ProjectID, candidate.URL),
	// inserting candidate when none exists. An existing record is returned
	// unchanged; created reports whether candidate was inserted.
	GetOrCreate(ctx context.Context, candidate *domain.URLInfo) (u *domain.URLInfo, created bool, err error)
	GetByID(ctx context.Context, id string) (*domain.URLInfo, error)
	GetByURL(ctx context.Context, projectID, url string) (*domain.URLInfo, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.URLInfo, error)
	ListAll(ctx context.Context) ([]*domain.URLInfo, error)
}

// QuestionFilter narrows question listings. Zero values mean "any".
type QuestionFilter struct {
	ProjectID string
	Status    domain.QuestionStatus
}

type QuestionRepo interface {
	Create(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id string) (*domain.Question, error)
	// FindByText returns the question in projectID whose text equals text.
	FindByText(ctx context.Context, projectID, text string) (*domain.Question, error)
	List(ctx context.Context, f QuestionFilter) ([]*domain.Question, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Question, error)
	UpdateText(ctx context.Context, id, text string) error
	UpdateStatus(ctx context.Context, id string, status domain.QuestionStatus) error
	// DetachChildren clears parent_id on every direct child of parentID.
	DetachChildren(ctx context.Context, parentID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.QuestionNote) error
	GetByID(ctx context.Context, id string) (*domain.QuestionNote, error)
	// ListByQuestion returns notes oldest first, joined with their URL.
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.QuestionNote, error)
	// ListByQuestionNewestFirst is the report ordering: creation time descending.
	ListByQuestionNewestFirst(ctx context.Context, questionID string) ([]*domain.QuestionNote, error)
	ListByURL(ctx context.Context, urlID string) ([]*domain.QuestionNote, error)
	UpdateText(ctx context.Context, id, note string) error
	Delete(ctx context.Context, id string) error
	DeleteByQuestion(ctx context.Context, questionID string) (int, error)
	// ReplaceForQuestion deletes every note of questionID and inserts notes in
	// order. It must run inside a transaction to be atomic.
	ReplaceForQuestion(ctx context.Context, questionID string, notes []*domain.QuestionNote) error
}
