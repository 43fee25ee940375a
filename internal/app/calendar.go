package app

import (
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/utilization"
)

// CalendarRequest selects one month of one project's utilization.
type CalendarRequest struct {
	// Project is a project ID or short ID.
	Project string
	Month   domain.CalendarMonth
	// ResourceFilter is a resource ID, or utilization.AllResources.
	ResourceFilter string
}

// NewCalendarRequest returns a request for month across all resources.
func NewCalendarRequest(project string, month domain.CalendarMonth) CalendarRequest {
	return CalendarRequest{
		Project:        project,
		Month:          month,
		ResourceFilter: utilization.AllResources,
	}
}

type CalendarResponse struct {
	Project  *domain.Project
	Calendar *utilization.Calendar
	// Roster is every resource known to the store, ignoring the filter.
	Roster []*domain.Resource
}

type CalendarErrorCode string

const (
	CalendarErrFetchFailed    CalendarErrorCode = "FETCH_FAILED"
	CalendarErrInvalidRequest CalendarErrorCode = "INVALID_REQUEST"
)

type CalendarError struct {
	Code    CalendarErrorCode
	Message string
	Err     error
}

func (e *CalendarError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *CalendarError) Unwrap() error {
	return e.Err
}
