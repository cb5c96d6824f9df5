package service

import (
	"context"

	"github.com/alexanderramin/quest/internal/repository"
)

type reportService struct {
	projects  repository.ProjectRepo
	questions repository.QuestionRepo
	notes     repository.NoteRepo
}

func NewReportService(
	projects repository.ProjectRepo,
	questions repository.QuestionRepo,
	notes repository.NoteRepo,
) ReportService {
	return &reportService{projects: projects, questions: questions, notes: notes}
}

func (s *reportService) ProjectReport(ctx context.Context, projectID string) (*ProjectReport, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, persistenceErr("build report", err)
	}

	questions, err := s.questions.List(ctx, repository.QuestionFilter{ProjectID: projectID})
	if err != nil {
		return nil, persistenceErr("build report", err)
	}
	for _, q := range questions {
		if q.Notes, err = s.notes.ListByQuestionNewestFirst(ctx, q.ID); err != nil {
			return nil, persistenceErr("build report", err)
		}
	}
	return &ProjectReport{Project: project, Questions: questions}, nil
}

// CountNotes returns the total number of notes in the report.
func (r *ProjectReport) CountNotes() int {
	n := 0
	for _, q := range r.Questions {
		n += len(q.Notes)
	}
	return n
}
