package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/testutil"
	"github.com/alexanderramin/allot/internal/utilization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feb2025 = domain.CalendarMonth{Year: 2025, Month: 2}

func TestCalendarService_BuildsMonthFromStore(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewCalendarService(projects, resources, assignments)

	proj := seedProject(t, projects, "Web", testutil.WithShortID("WEB01"))
	ada := seedResource(t, resources, "Ada")
	bob := seedResource(t, resources, "Bob")
	seedAssignment(t, assignments, ada.ID, proj.ID, testutil.WithSpan("2025-02-01", "2025-02-04"), testutil.WithAllocation(60))
	seedAssignment(t, assignments, ada.ID, proj.ID, testutil.WithSpan("2025-02-03", "2025-02-05"), testutil.WithAllocation(50))
	seedAssignment(t, assignments, bob.ID, proj.ID, testutil.WithSpan("2025-01-20", "2025-03-10"), testutil.WithAllocation(40))

	resp, err := svc.Calendar(ctx, app.NewCalendarRequest("WEB01", feb2025))
	require.NoError(t, err)
	cal := resp.Calendar

	assert.Equal(t, proj.ID, resp.Project.ID)
	assert.Len(t, resp.Roster, 2)
	assert.Len(t, cal.Grid, 6+28)

	assert.Equal(t, 110.0, cal.Cell(ada.ID, "2025-02-03").Aggregate)
	assert.Equal(t, domain.BandOver, cal.Cell(ada.ID, "2025-02-04").Band)
	assert.Equal(t, domain.BandLight, cal.Cell(ada.ID, "2025-02-05").Band)
	assert.Equal(t, domain.BandNone, cal.Cell(ada.ID, "2025-02-06").Band)
	assert.Equal(t, 40.0, cal.Cell(bob.ID, "2025-02-28").Aggregate)

	assert.Equal(t, utilization.Summary{
		TotalResources:    2,
		ActiveAssignments: 3,
		OverAllocatedDays: 2,
	}, cal.Summary)
}

func TestCalendarService_ResourceFilter(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	ctx := context.Background()
	svc := NewCalendarService(projects, resources, assignments)

	proj := seedProject(t, projects, "Web")
	ada := seedResource(t, resources, "Ada")
	bob := seedResource(t, resources, "Bob")
	seedAssignment(t, assignments, ada.ID, proj.ID)
	seedAssignment(t, assignments, bob.ID, proj.ID)

	req := app.NewCalendarRequest(proj.ID, feb2025)
	req.ResourceFilter = bob.ID
	resp, err := svc.Calendar(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Calendar.Resources, 1)
	assert.Equal(t, bob.ID, resp.Calendar.Resources[0].ID)
	assert.Equal(t, 1, resp.Calendar.Summary.ActiveAssignments)
	assert.Len(t, resp.Roster, 2, "roster ignores the filter")
}

func TestCalendarService_EmptyScopeIsNotAnError(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	svc := NewCalendarService(projects, resources, assignments)

	proj := seedProject(t, projects, "Empty")

	resp, err := svc.Calendar(context.Background(), app.NewCalendarRequest(proj.ID, feb2025))
	require.NoError(t, err)
	assert.Empty(t, resp.Calendar.Resources)
	assert.Equal(t, utilization.Summary{}, resp.Calendar.Summary)
}

func TestCalendarService_LogsSkippedAssignments(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	ctx, logs := captureLogs()
	svc := NewCalendarService(projects, resources, assignments)

	proj := seedProject(t, projects, "Web")
	ada := seedResource(t, resources, "Ada")
	bad := seedAssignment(t, assignments, ada.ID, proj.ID, testutil.WithSpan("2025-02-10", "2025-02-01"))
	seedAssignment(t, assignments, ada.ID, proj.ID, testutil.WithSpan("2025-02-01", "2025-02-01"), testutil.WithAllocation(30))

	resp, err := svc.Calendar(ctx, app.NewCalendarRequest(proj.ID, feb2025))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Calendar.Summary.SkippedAssignments)
	assert.Equal(t, 30.0, resp.Calendar.Cell(ada.ID, "2025-02-01").Aggregate)
	assert.Contains(t, logs.String(), "skipping malformed assignment")
	assert.Contains(t, logs.String(), bad.ID)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
}

func TestCalendarService_InvalidRequests(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	svc := NewCalendarService(projects, resources, assignments)

	tests := []struct {
		name string
		req  app.CalendarRequest
	}{
		{"missing project", app.NewCalendarRequest("", feb2025)},
		{"unknown project", app.NewCalendarRequest("NOPE01", feb2025)},
		{"month zero", app.NewCalendarRequest("NOPE01", domain.CalendarMonth{Year: 2025})},
		{"month thirteen", app.NewCalendarRequest("NOPE01", domain.CalendarMonth{Year: 2025, Month: 13})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Calendar(context.Background(), tc.req)

			var calErr *app.CalendarError
			require.True(t, errors.As(err, &calErr))
			assert.Equal(t, app.CalendarErrInvalidRequest, calErr.Code)
		})
	}
}

type failingAssignmentRepo struct {
	repository.AssignmentRepo
	err error
}

func (f failingAssignmentRepo) ListByProject(context.Context, string) ([]*domain.ResourceAssignment, error) {
	return nil, f.err
}

type failingResourceRepo struct {
	repository.ResourceRepo
	err error
}

func (f failingResourceRepo) List(context.Context) ([]*domain.Resource, error) {
	return nil, f.err
}

func TestCalendarService_FetchFailures(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	proj := seedProject(t, projects, "Web")
	cause := errors.New("store offline")

	tests := []struct {
		name string
		svc  CalendarService
	}{
		{"resources", NewCalendarService(projects, failingResourceRepo{resources, cause}, assignments)},
		{"assignments", NewCalendarService(projects, resources, failingAssignmentRepo{assignments, cause})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.svc.Calendar(context.Background(), app.NewCalendarRequest(proj.ID, feb2025))

			var calErr *app.CalendarError
			require.True(t, errors.As(err, &calErr))
			assert.Equal(t, app.CalendarErrFetchFailed, calErr.Code)
			assert.ErrorIs(t, err, cause)
		})
	}
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestCalendarService_ObservesUseCase(t *testing.T) {
	projects, resources, assignments, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewCalendarService(projects, resources, assignments, obs)

	proj := seedProject(t, projects, "Web")
	_, err := svc.Calendar(context.Background(), app.NewCalendarRequest(proj.ID, feb2025))
	require.NoError(t, err)
	_, err = svc.Calendar(context.Background(), app.NewCalendarRequest("", feb2025))
	require.Error(t, err)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "calendar", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "2025-02", obs.events[0].Fields["month"])
	assert.False(t, obs.events[1].Success)
}
