package app

import (
	"context"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/importer"
)

type CalendarUseCase interface {
	Calendar(ctx context.Context, req CalendarRequest) (*CalendarResponse, error)
}

type ImportResult struct {
	Project          *domain.Project
	ProjectCreated   bool
	ResourcesCreated int
	ResourcesReused  int
	AssignmentCount  int
}

type ImportUseCase interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
