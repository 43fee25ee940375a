package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/teatest"
	"github.com/alexanderramin/allot/internal/utilization"
	"github.com/alexanderramin/allot/internal/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCalendar builds calendars from a fixed snapshot and records every
// request. failNext makes the next call fail.
type fakeCalendar struct {
	mu          sync.Mutex
	project     *domain.Project
	resources   []*domain.Resource
	assignments []*domain.ResourceAssignment
	requests    []app.CalendarRequest
	failNext    error
}

func newFakeCalendar() *fakeCalendar {
	day := func(s string) time.Time {
		d, _ := domain.ParseDay(s)
		return d
	}
	return &fakeCalendar{
		project: &domain.Project{ID: "p1", ShortID: "WEB01", Name: "Website"},
		resources: []*domain.Resource{
			{ID: "r1", Name: "Ada"},
			{ID: "r2", Name: "Grace"},
		},
		assignments: []*domain.ResourceAssignment{
			{ID: "a1", ResourceID: "r1", StartDate: day("2025-02-03"), EndDate: day("2025-03-02"), AllocationPercentage: 120, IsActive: true},
		},
	}
}

func (f *fakeCalendar) Calendar(_ context.Context, req app.CalendarRequest) (*app.CalendarResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := f.failNext; err != nil {
		f.failNext = nil
		return nil, &app.CalendarError{Code: app.CalendarErrFetchFailed, Message: "loading assignments", Err: err}
	}
	cal := utilization.Build(utilization.BuildInput{
		Month:          req.Month,
		ResourceFilter: req.ResourceFilter,
		Resources:      f.resources,
		Assignments:    f.assignments,
	})
	return &app.CalendarResponse{Project: f.project, Calendar: cal, Roster: f.resources}, nil
}

func (f *fakeCalendar) last() app.CalendarRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func startCalendarView(t *testing.T, fake *fakeCalendar) (*teatest.Driver, *calendarView) {
	t.Helper()
	view := newCalendarView(context.Background(), fake, 0, viewmodel.Params{
		Project: "WEB01",
		Month:   domain.CalendarMonth{Year: 2025, Month: time.February},
	})
	d := teatest.New(t, view, teatest.WithSize(120, 40), teatest.WithCmdTimeout(time.Second))
	d.DrainInit()
	return d, view
}

func TestCalendarView_InitialLoad(t *testing.T) {
	fake := newFakeCalendar()
	d, view := startCalendarView(t, fake)

	assert.Equal(t, viewmodel.PhaseReady, view.vm.Phase())
	out := stripANSI(d.View())
	assert.Contains(t, out, "Website [WEB01] · February 2025")
	assert.Contains(t, out, "over-allocated days")
	assert.Contains(t, out, "prev month")
	assert.Equal(t, utilization.AllResources, fake.last().ResourceFilter)
}

func TestCalendarView_MonthNavigation(t *testing.T) {
	fake := newFakeCalendar()
	d, _ := startCalendarView(t, fake)

	d.PressKey('l')
	assert.Equal(t, domain.CalendarMonth{Year: 2025, Month: time.March}, fake.last().Month)
	assert.Contains(t, stripANSI(d.View()), "March 2025")

	d.PressLeft()
	d.PressLeft()
	assert.Equal(t, domain.CalendarMonth{Year: 2025, Month: time.January}, fake.last().Month)

	d.PressKey('h')
	assert.Equal(t, domain.CalendarMonth{Year: 2024, Month: time.December}, fake.last().Month)
	assert.Contains(t, stripANSI(d.View()), "December 2024")

	d.PressRight()
	assert.Equal(t, domain.CalendarMonth{Year: 2025, Month: time.January}, fake.last().Month)
}

func TestCalendarView_FilterCyclesRoster(t *testing.T) {
	fake := newFakeCalendar()
	d, view := startCalendarView(t, fake)

	d.PressKey('f')
	assert.Equal(t, "r1", fake.last().ResourceFilter)
	assert.Contains(t, stripANSI(d.View()), "February 2025 · Ada")

	d.PressKey('f')
	assert.Equal(t, "r2", fake.last().ResourceFilter)

	d.PressKey('f')
	assert.Equal(t, utilization.AllResources, fake.last().ResourceFilter)
	assert.Len(t, view.vm.Calendar().Resources, 2)
}

func TestCalendarView_FailureThenRetry(t *testing.T) {
	fake := newFakeCalendar()
	d, view := startCalendarView(t, fake)

	fake.failNext = errors.New("database is locked")
	d.PressKey('l')
	require.Equal(t, viewmodel.PhaseFailed, view.vm.Phase())
	out := stripANSI(d.View())
	assert.Contains(t, out, "Could not load calendar")
	assert.Contains(t, out, "database is locked")
	assert.Contains(t, out, "Press r to retry.")

	d.PressKey('r')
	require.Equal(t, viewmodel.PhaseReady, view.vm.Phase())
	assert.Equal(t, domain.CalendarMonth{Year: 2025, Month: time.March}, fake.last().Month)
	assert.Contains(t, stripANSI(d.View()), "March 2025")
}

func TestCalendarView_StaleResultIgnored(t *testing.T) {
	fake := newFakeCalendar()
	d, view := startCalendarView(t, fake)
	d.PressKey('l')

	// A late answer for the original February request arrives after March.
	stale := viewmodel.Request{Seq: 1, Params: viewmodel.Params{
		Project: "WEB01", Month: domain.CalendarMonth{Year: 2025, Month: time.February}, ResourceFilter: utilization.AllResources,
	}}
	resp, err := fake.Calendar(context.Background(), stale.Params.CalendarRequest())
	require.NoError(t, err)
	d.Send(calendarLoadedMsg{req: stale, res: viewmodel.Result{Response: resp}})

	assert.Equal(t, time.March, view.vm.Calendar().Month.Month)
	assert.Contains(t, stripANSI(d.View()), "March 2025")
}

func TestCalendarView_LoadingShowsSpinner(t *testing.T) {
	view := newCalendarView(context.Background(), newFakeCalendar(), 0, viewmodel.Params{
		Project: "WEB01",
		Month:   domain.CalendarMonth{Year: 2025, Month: time.February},
	})
	// Init mints the request but the command is never run.
	_ = view.Init()

	assert.Equal(t, viewmodel.PhaseLoading, view.vm.Phase())
	assert.Contains(t, stripANSI(view.View()), "Loading February 2025…")
}

func TestCalendarView_Quit(t *testing.T) {
	d, _ := startCalendarView(t, newFakeCalendar())
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestCalendarView_CtrlCQuits(t *testing.T) {
	d, _ := startCalendarView(t, newFakeCalendar())
	d.Press(tea.KeyCtrlC)
	assert.True(t, d.Quitting)
}
