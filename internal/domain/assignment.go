package domain

import (
	"math"
	"time"
)

// ResourceAssignment commits a percentage of a resource's capacity to a
// project for every day in [StartDate, EndDate].
type ResourceAssignment struct {
	ID                   string
	ResourceID           string
	ProjectID            string
	Title                string
	StartDate            time.Time
	EndDate              time.Time
	AllocationPercentage float64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Malformed reports whether the assignment cannot take part in aggregation:
// an inverted date range, or a non-finite or negative percentage.
func (a *ResourceAssignment) Malformed() bool {
	if CivilDate(a.StartDate).After(CivilDate(a.EndDate)) {
		return true
	}
	p := a.AllocationPercentage
	return math.IsNaN(p) || math.IsInf(p, 0) || p < 0
}

// Span returns the assignment's inclusive day range.
func (a *ResourceAssignment) Span() DateRange {
	return NewDateRange(a.StartDate, a.EndDate)
}
