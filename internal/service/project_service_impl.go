package service

import (
	"context"
	"time"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, cmd domain.CreateProjectCmd) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"name": cmd.Name}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, fields, err) }()

	if err = domain.ValidateCommand(cmd); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)

		if _, err := txProjects.GetByName(ctx, cmd.Name); err == nil {
			return domain.NewValidationError("name", domain.RuleDuplicateName, "project %q already exists", cmd.Name)
		} else if !domain.IsNotFound(err) {
			return err
		}

		project = &domain.Project{
			ID:        uuid.New().String(),
			Name:      cmd.Name,
			CreatedAt: startedAt,
		}
		return txProjects.Create(ctx, project)
	})
	if err != nil {
		return nil, persistenceErr("create project", err)
	}
	fields["project_id"] = project.ID
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	return p, persistenceErr("get project", err)
}

func (s *projectService) GetByName(ctx context.Context, name string) (*domain.Project, error) {
	p, err := s.projects.GetByName(ctx, name)
	return p, persistenceErr("get project", err)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	ps, err := s.projects.List(ctx)
	return ps, persistenceErr("list projects", err)
}

// Delete removes the project. Its questions, notes and URLs go with it via
// foreign key cascades.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "delete-project", startedAt, map[string]any{"project_id": id}, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
	return persistenceErr("delete project", err)
}
