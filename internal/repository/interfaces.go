package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/allot/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no record.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type ResourceRepo interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

type AssignmentRepo interface {
	Create(ctx context.Context, a *domain.ResourceAssignment) error
	GetByID(ctx context.Context, id string) (*domain.ResourceAssignment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ResourceAssignment, error)
	ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAssignment, error)
	Update(ctx context.Context, a *domain.ResourceAssignment) error
	Delete(ctx context.Context, id string) error
}

// Repos groups the repositories of one store.
type Repos struct {
	Projects    ProjectRepo
	Resources   ResourceRepo
	Assignments AssignmentRepo
}

// Transactor runs fn against repositories whose writes land together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}
