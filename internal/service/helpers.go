package service

import (
	"errors"
	"time"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/google/uuid"
)

// persistenceErr passes NotFound, ValidationError and PersistenceError
// through unchanged and wraps every other failure as a PersistenceError.
func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) {
		return err
	}
	if _, ok := domain.AsValidation(err); ok {
		return err
	}
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

func newURLInfo(projectID string, ref *domain.URLRef, now time.Time) *domain.URLInfo {
	return &domain.URLInfo{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		URL:       ref.URL,
		Title:     ref.Title,
		CreatedAt: now,
	}
}

func newNote(questionID string, urlID *string, text string, now time.Time) *domain.QuestionNote {
	return &domain.QuestionNote{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		URLID:      urlID,
		Note:       text,
		CreatedAt:  now,
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
