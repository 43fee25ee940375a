// Package viewmodel drives the calendar screen: it tracks which month,
// project and resource filter are on display, which load is in flight, and
// what the last completed load produced.
package viewmodel

import (
	"context"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/utilization"
)

// Phase is the load state of the calendar.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Params identify one calendar load.
type Params struct {
	Project        string
	Month          domain.CalendarMonth
	ResourceFilter string
}

// CalendarRequest converts the params into a service request.
func (p Params) CalendarRequest() app.CalendarRequest {
	req := app.NewCalendarRequest(p.Project, p.Month)
	if p.ResourceFilter != "" {
		req.ResourceFilter = p.ResourceFilter
	}
	return req
}

// Request is a load minted by the view model. Seq orders requests; only the
// most recently minted one may update the state.
type Request struct {
	Seq    uint64
	Params Params
}

// Result is the outcome of running a Request.
type Result struct {
	Response *app.CalendarResponse
	Err      error
}

// CalendarLoader fetches and computes one calendar.
type CalendarLoader interface {
	Calendar(ctx context.Context, req app.CalendarRequest) (*app.CalendarResponse, error)
}

// Run performs the load for req. It is the only blocking step in a
// navigation cycle and touches no view model state, so it can run on any
// goroutine.
func Run(ctx context.Context, loader CalendarLoader, req Request) Result {
	resp, err := loader.Calendar(ctx, req.Params.CalendarRequest())
	return Result{Response: resp, Err: err}
}

// ViewModel is the calendar state machine:
//
//	Idle -> Loading -> Ready
//	           \-----> Failed -> (Retry) -> Loading
//
// Every navigation enters Loading and mints a new Request. Resolve applies a
// result only if it belongs to the latest request, so a slow load for an
// earlier month cannot overwrite a later one. A ViewModel is not safe for
// concurrent use; callers resolve results on the goroutine that owns it.
type ViewModel struct {
	phase    Phase
	params   Params
	seq      uint64
	snapshot *app.CalendarResponse
	err      error
}

func New() *ViewModel {
	return &ViewModel{}
}

func (vm *ViewModel) Phase() Phase { return vm.phase }

// Params returns the parameters of the current, or most recent, load.
func (vm *ViewModel) Params() Params { return vm.params }

// Snapshot returns the last successful response, or nil.
func (vm *ViewModel) Snapshot() *app.CalendarResponse { return vm.snapshot }

// Calendar returns the last successful calendar, or nil.
func (vm *ViewModel) Calendar() *utilization.Calendar {
	if vm.snapshot == nil {
		return nil
	}
	return vm.snapshot.Calendar
}

// Err returns the failure of the last load while in PhaseFailed.
func (vm *ViewModel) Err() error { return vm.err }

// Load starts a load for p.
func (vm *ViewModel) Load(p Params) Request {
	if p.ResourceFilter == "" {
		p.ResourceFilter = utilization.AllResources
	}
	return vm.begin(p)
}

func (vm *ViewModel) PreviousMonth() Request {
	p := vm.params
	p.Month = p.Month.PreviousMonth()
	return vm.begin(p)
}

func (vm *ViewModel) NextMonth() Request {
	p := vm.params
	p.Month = p.Month.NextMonth()
	return vm.begin(p)
}

// SetResourceFilter narrows the view to one resource, or to all of them
// with utilization.AllResources.
func (vm *ViewModel) SetResourceFilter(resourceID string) Request {
	p := vm.params
	p.ResourceFilter = resourceID
	if p.ResourceFilter == "" {
		p.ResourceFilter = utilization.AllResources
	}
	return vm.begin(p)
}

// Retry reloads with the current params. It reports false while Idle since
// there is nothing to reload yet.
func (vm *ViewModel) Retry() (Request, bool) {
	if vm.phase == PhaseIdle {
		return Request{}, false
	}
	return vm.begin(vm.params), true
}

// Resolve applies res if req is the latest request and reports whether it
// did. Results of superseded requests are dropped.
func (vm *ViewModel) Resolve(req Request, res Result) bool {
	if req.Seq != vm.seq || vm.phase != PhaseLoading {
		return false
	}
	if res.Err != nil {
		vm.phase = PhaseFailed
		vm.err = res.Err
		vm.snapshot = nil
		return true
	}
	vm.phase = PhaseReady
	vm.err = nil
	vm.snapshot = res.Response
	return true
}

func (vm *ViewModel) begin(p Params) Request {
	vm.seq++
	vm.phase = PhaseLoading
	vm.params = p
	vm.err = nil
	return Request{Seq: vm.seq, Params: p}
}

// NextFilter cycles all -> first resource -> ... -> last resource -> all.
// A filter that no longer matches a roster entry restarts the cycle.
func NextFilter(current string, roster []*domain.Resource) string {
	if len(roster) == 0 {
		return utilization.AllResources
	}
	if current == "" || current == utilization.AllResources {
		return roster[0].ID
	}
	for i, r := range roster {
		if r.ID == current {
			if i+1 < len(roster) {
				return roster[i+1].ID
			}
			return utilization.AllResources
		}
	}
	return utilization.AllResources
}
