package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/google/uuid"
)

// Existing is the state already in the store that an import reconciles with.
type Existing struct {
	Project   *domain.Project
	Resources []*domain.Resource
}

// Generated is the set of records an import will write.
type Generated struct {
	Project         *domain.Project
	ProjectIsNew    bool
	NewResources    []*domain.Resource
	ReusedResources int
	Assignments     []*domain.ResourceAssignment
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, existing Existing) (*Generated, error) {
	now := time.Now().UTC()
	gen := &Generated{Project: existing.Project}

	if gen.Project == nil {
		gen.ProjectIsNew = true
		gen.Project = &domain.Project{
			ID:        uuid.New().String(),
			ShortID:   strings.ToUpper(schema.Project.ShortID),
			Name:      schema.Project.Name,
			Status:    domain.ProjectActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	byName := make(map[string]*domain.Resource, len(existing.Resources))
	for _, r := range existing.Resources {
		byName[strings.ToLower(strings.TrimSpace(r.Name))] = r
	}

	refMap := make(map[string]string) // ref -> resource ID
	for _, ri := range schema.Resources {
		if r, ok := byName[strings.ToLower(strings.TrimSpace(ri.Name))]; ok {
			refMap[ri.Ref] = r.ID
			gen.ReusedResources++
			continue
		}
		r := &domain.Resource{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(ri.Name),
			Role:      ri.Role,
			CreatedAt: now,
			UpdatedAt: now,
		}
		refMap[ri.Ref] = r.ID
		gen.NewResources = append(gen.NewResources, r)
	}

	gen.Assignments = make([]*domain.ResourceAssignment, 0, len(schema.Assignments))
	for i, ai := range schema.Assignments {
		resourceID, ok := refMap[ai.ResourceRef]
		if !ok {
			return nil, fmt.Errorf("assignments[%d]: unresolved resource_ref %q", i, ai.ResourceRef)
		}
		start, err := domain.ParseDay(ai.StartDate)
		if err != nil {
			return nil, fmt.Errorf("assignments[%d]: %w", i, err)
		}
		end, err := domain.ParseDay(ai.EndDate)
		if err != nil {
			return nil, fmt.Errorf("assignments[%d]: %w", i, err)
		}

		active := true
		if ai.Active != nil {
			active = *ai.Active
		}

		gen.Assignments = append(gen.Assignments, &domain.ResourceAssignment{
			ID:                   uuid.New().String(),
			ResourceID:           resourceID,
			ProjectID:            gen.Project.ID,
			Title:                ai.Title,
			StartDate:            start,
			EndDate:              end,
			AllocationPercentage: ai.AllocationPct,
			IsActive:             active,
			CreatedAt:            now,
			UpdatedAt:            now,
		})
	}

	return gen, nil
}
