package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/project-pulse/pulse-backend/internal/projects/domain"
	"github.com/project-pulse/pulse-backend/internal/projects/repository"
)

// ProjectService handles project business logic between the HTTP layer
// and the repository.
type ProjectService struct {
	repo   *repository.Repo
	logger *zap.Logger
}

func NewProjectService(repo *repository.Repo, logger *zap.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// Create stores a new project, defaulting the status when none is given.
func (s *ProjectService) Create(ctx context.Context, name string, description *string, status *domain.Status) (*domain.Project, error) {
	st := domain.DefaultStatus
	if status != nil {
		st = *status
	}
	return s.repo.Create(ctx, name, description, st)
}

// Get returns a single project by id.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of filtered, sorted projects.
func (s *ProjectService) List(ctx context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error) {
	return s.repo.List(ctx, filter, sort, page)
}

// Update applies a partial update. An empty patch is a touch: it only
// refreshes updated_at.
func (s *ProjectService) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.IsZero() {
		s.logger.Debug("empty patch, touching project", zap.Int64("id", id))
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a project permanently.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Stats returns the per-status counts over the full dataset.
func (s *ProjectService) Stats(ctx context.Context) (*domain.Stats, error) {
	return s.repo.Stats(ctx)
}
