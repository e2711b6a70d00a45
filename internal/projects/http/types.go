package http

import (
	"context"

	"github.com/project-pulse/pulse-backend/internal/projects/domain"
)

// ProjectStore is the slice of the service the handlers need.
type ProjectStore interface {
	Create(ctx context.Context, name string, description *string, status *domain.Status) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, filter domain.ListFilter, sort domain.Sort, page domain.Page) (*domain.ListResult, error)
	Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.Stats, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	store ProjectStore
}

func New(store ProjectStore) *Handler {
	return &Handler{store: store}
}

type createReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type updateReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}
