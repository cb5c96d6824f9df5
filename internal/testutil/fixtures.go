package testutil

import (
	"time"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/google/uuid"
)

func NewTestProject(name string) *domain.Project {
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Question options
type QuestionOption func(*domain.Question)

// WithParent nests the question under parent and derives its hierarchy.
func WithParent(parent *domain.Question) QuestionOption {
	return func(q *domain.Question) {
		id := parent.ID
		q.ParentID = &id
		q.Hierarchy = domain.ResolveHierarchy(parent)
	}
}

func WithQuestionStatus(s domain.QuestionStatus) QuestionOption {
	return func(q *domain.Question) {
		q.Status = s
	}
}

func WithQuestionCreatedAt(t time.Time) QuestionOption {
	return func(q *domain.Question) {
		q.CreatedAt = t
	}
}

func NewTestQuestion(projectID, text string, opts ...QuestionOption) *domain.Question {
	q := &domain.Question{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Text:      text,
		Status:    domain.QuestionToResearch,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func NewTestURL(projectID, url, title string) *domain.URLInfo {
	return &domain.URLInfo{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		URL:       url,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
}

// Note options
type NoteOption func(*domain.QuestionNote)

// WithURL attributes the note to u and sets the joined record the way read
// paths return it.
func WithURL(u *domain.URLInfo) NoteOption {
	return func(n *domain.QuestionNote) {
		id := u.ID
		n.URLID = &id
		n.URL = u
	}
}

func WithNoteCreatedAt(t time.Time) NoteOption {
	return func(n *domain.QuestionNote) {
		n.CreatedAt = t
	}
}

func NewTestNote(questionID, text string, opts ...NoteOption) *domain.QuestionNote {
	n := &domain.QuestionNote{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		Note:       text,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
