package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/importer"
	"github.com/alexanderramin/allot/internal/repository"
)

type importService struct {
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewImportService(tx repository.Transactor, observers ...UseCaseObserver) ImportService {
	return &importService{
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

// ImportFromSchema writes the schema's project, resources and assignments
// inside one transaction. An existing project with the same short ID and
// resources with matching names are reused.
func (s *importService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": schema.Project.ShortID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repos) error {
		existing, err := loadExisting(ctx, repos, strings.ToUpper(schema.Project.ShortID))
		if err != nil {
			return err
		}

		generated, err := importer.Convert(schema, existing)
		if err != nil {
			return fmt.Errorf("converting import schema: %w", err)
		}

		if generated.ProjectIsNew {
			if err := repos.Projects.Create(ctx, generated.Project); err != nil {
				return fmt.Errorf("creating project: %w", err)
			}
		}
		for _, r := range generated.NewResources {
			if err := repos.Resources.Create(ctx, r); err != nil {
				return fmt.Errorf("creating resource %q: %w", r.Name, err)
			}
		}
		for _, a := range generated.Assignments {
			if err := repos.Assignments.Create(ctx, a); err != nil {
				return fmt.Errorf("creating assignment %q: %w", a.Title, err)
			}
		}

		result = &app.ImportResult{
			Project:          generated.Project,
			ProjectCreated:   generated.ProjectIsNew,
			ResourcesCreated: len(generated.NewResources),
			ResourcesReused:  generated.ReusedResources,
			AssignmentCount:  len(generated.Assignments),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["assignments"] = result.AssignmentCount
	fields["resources_created"] = result.ResourcesCreated
	return result, nil
}

func loadExisting(ctx context.Context, repos repository.Repos, shortID string) (importer.Existing, error) {
	var existing importer.Existing

	project, err := repos.Projects.GetByShortID(ctx, shortID)
	switch {
	case err == nil:
		if project.Status == domain.ProjectArchived {
			return existing, fmt.Errorf("project %s %w", project.DisplayID(), ErrProjectArchived)
		}
		existing.Project = project
	case !errors.Is(err, repository.ErrNotFound):
		return existing, fmt.Errorf("loading project: %w", err)
	}

	existing.Resources, err = repos.Resources.List(ctx)
	if err != nil {
		return existing, fmt.Errorf("loading resources: %w", err)
	}
	return existing, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
