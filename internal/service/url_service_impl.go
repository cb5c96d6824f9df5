package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/quest/internal/db"
	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/repository"
)

type urlService struct {
	projects repository.ProjectRepo
	urls     repository.URLInfoRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewURLService(
	projects repository.ProjectRepo,
	urls repository.URLInfoRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) URLService {
	return &urlService{
		projects: projects,
		urls:     urls,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *urlService) GetOrCreate(ctx context.Context, projectID, url, title string) (info *domain.URLInfo, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() { observe(ctx, s.observer, "get-or-create-url", startedAt, fields, err) }()

	ref := &domain.URLRef{URL: strings.TrimSpace(url), Title: title}
	if err = domain.ValidateCommand(ref); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}
		u, created, err := repository.NewSQLiteURLInfoRepo(tx).GetOrCreate(ctx, newURLInfo(projectID, ref, startedAt))
		if err != nil {
			return err
		}
		fields["created"] = created
		info = u
		return nil
	})
	if err != nil {
		return nil, persistenceErr("get or create url", err)
	}
	return info, nil
}

func (s *urlService) GetByID(ctx context.Context, id string) (*domain.URLInfo, error) {
	u, err := s.urls.GetByID(ctx, id)
	return u, persistenceErr("get url", err)
}

func (s *urlService) ListByProject(ctx context.Context, projectID string) ([]*domain.URLInfo, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, persistenceErr("list urls", err)
	}
	us, err := s.urls.ListByProject(ctx, projectID)
	return us, persistenceErr("list urls", err)
}

func (s *urlService) ListAll(ctx context.Context) ([]*domain.URLInfo, error) {
	us, err := s.urls.ListAll(ctx)
	return us, persistenceErr("list urls", err)
}
