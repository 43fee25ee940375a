package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/importer"
)

// ErrProjectArchived is returned when writing to an archived project.
var ErrProjectArchived = errors.New("is archived")

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve looks a project up by ID, then by short ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type ResourceService interface {
	Create(ctx context.Context, r *domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentInput is the write-time shape of a new assignment. Dates are
// YYYY-MM-DD strings so every input path validates them the same way.
type AssignmentInput struct {
	ProjectID     string  `json:"project_id" validate:"notblank"`
	ResourceID    string  `json:"resource_id" validate:"notblank"`
	Title         string  `json:"title"`
	StartDate     string  `json:"start_date" validate:"required,day"`
	EndDate       string  `json:"end_date" validate:"required,day"`
	AllocationPct float64 `json:"allocation_pct" validate:"gte=0,lte=100"`
}

type AssignmentService interface {
	Add(ctx context.Context, in AssignmentInput) (*domain.ResourceAssignment, error)
	GetByID(ctx context.Context, id string) (*domain.ResourceAssignment, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ResourceAssignment, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type CalendarService interface {
	Calendar(ctx context.Context, req app.CalendarRequest) (*app.CalendarResponse, error)
}

type ImportService interface {
	Import(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}
