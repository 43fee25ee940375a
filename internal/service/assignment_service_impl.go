package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/validation"
	"github.com/google/uuid"
)

func init() {
	validation.RegisterSpan(AssignmentInput{}, "StartDate", "EndDate")
}

type assignmentService struct {
	projects    repository.ProjectRepo
	resources   repository.ResourceRepo
	assignments repository.AssignmentRepo
}

func NewAssignmentService(
	projects repository.ProjectRepo,
	resources repository.ResourceRepo,
	assignments repository.AssignmentRepo,
) AssignmentService {
	return &assignmentService{
		projects:    projects,
		resources:   resources,
		assignments: assignments,
	}
}

// Add validates the input, checks that the project and resource exist and
// stores a new active assignment. Validation failures unwrap to
// validator.ValidationErrors.
func (s *assignmentService) Add(ctx context.Context, in AssignmentInput) (*domain.ResourceAssignment, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("validating assignment: %w", err)
	}

	project, err := resolveProject(ctx, s.projects, in.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if project.Status == domain.ProjectArchived {
		return nil, fmt.Errorf("project %s %w", project.DisplayID(), ErrProjectArchived)
	}
	if _, err := s.resources.GetByID(ctx, in.ResourceID); err != nil {
		return nil, fmt.Errorf("loading resource: %w", err)
	}

	// Both dates were checked by the validator.
	start, _ := domain.ParseDay(in.StartDate)
	end, _ := domain.ParseDay(in.EndDate)

	now := time.Now().UTC()
	a := &domain.ResourceAssignment{
		ID:                   uuid.New().String(),
		ResourceID:           in.ResourceID,
		ProjectID:            project.ID,
		Title:                in.Title,
		StartDate:            start,
		EndDate:              end,
		AllocationPercentage: in.AllocationPct,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) GetByID(ctx context.Context, id string) (*domain.ResourceAssignment, error) {
	return s.assignments.GetByID(ctx, id)
}

func (s *assignmentService) ListByProject(ctx context.Context, projectID string) ([]*domain.ResourceAssignment, error) {
	return s.assignments.ListByProject(ctx, projectID)
}

// Deactivate keeps the assignment for history but drops it from aggregation.
func (s *assignmentService) Deactivate(ctx context.Context, id string) error {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.IsActive {
		return nil
	}
	a.IsActive = false
	a.UpdatedAt = time.Now().UTC()
	return s.assignments.Update(ctx, a)
}

func (s *assignmentService) Delete(ctx context.Context, id string) error {
	return s.assignments.Delete(ctx, id)
}
