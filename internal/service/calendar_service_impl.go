package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/utilization"
	"github.com/m-mizutani/ctxlog"
)

type calendarService struct {
	projects    repository.ProjectRepo
	resources   repository.ResourceRepo
	assignments repository.AssignmentRepo
	observer    UseCaseObserver
}

func NewCalendarService(
	projects repository.ProjectRepo,
	resources repository.ResourceRepo,
	assignments repository.AssignmentRepo,
	observers ...UseCaseObserver,
) CalendarService {
	return &calendarService{
		projects:    projects,
		resources:   resources,
		assignments: assignments,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Calendar fetches a fresh snapshot of resources and project assignments
// and builds the month view from it. Store failures are reported as
// CalendarErrFetchFailed; nothing is cached between calls.
func (s *calendarService) Calendar(ctx context.Context, req app.CalendarRequest) (resp *app.CalendarResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project": req.Project,
		"month":   req.Month.String(),
		"filter":  req.ResourceFilter,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "calendar",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(req.Project) == "" {
		return nil, &app.CalendarError{Code: app.CalendarErrInvalidRequest, Message: "project is required"}
	}
	if req.Month.Month < time.January || req.Month.Month > time.December || req.Month.Year <= 0 {
		return nil, &app.CalendarError{
			Code:    app.CalendarErrInvalidRequest,
			Message: fmt.Sprintf("invalid month %d-%d", req.Month.Year, req.Month.Month),
		}
	}

	project, err := resolveProject(ctx, s.projects, req.Project)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &app.CalendarError{
				Code:    app.CalendarErrInvalidRequest,
				Message: fmt.Sprintf("unknown project %q", req.Project),
				Err:     err,
			}
		}
		return nil, &app.CalendarError{Code: app.CalendarErrFetchFailed, Message: "loading project", Err: err}
	}

	roster, err := s.resources.List(ctx)
	if err != nil {
		return nil, &app.CalendarError{Code: app.CalendarErrFetchFailed, Message: "loading resources", Err: err}
	}
	assignments, err := s.assignments.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, &app.CalendarError{Code: app.CalendarErrFetchFailed, Message: "loading assignments", Err: err}
	}

	cal := utilization.Build(utilization.BuildInput{
		Month:          req.Month,
		ResourceFilter: req.ResourceFilter,
		Resources:      roster,
		Assignments:    assignments,
	})

	logger := ctxlog.From(ctx)
	for _, id := range cal.Skipped {
		logger.Warn("skipping malformed assignment", "assignment_id", id, "project", project.DisplayID())
	}
	fields["resources"] = cal.Summary.TotalResources
	fields["over_allocated_days"] = cal.Summary.OverAllocatedDays
	fields["skipped"] = cal.Summary.SkippedAssignments

	return &app.CalendarResponse{Project: project, Calendar: cal, Roster: roster}, nil
}
