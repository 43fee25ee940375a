package utilization

import "github.com/alexanderramin/allot/internal/domain"

// Summary holds the headline counters for a calendar view.
type Summary struct {
	TotalResources     int
	ActiveAssignments  int
	OverAllocatedDays  int
	SkippedAssignments int
}

// Summarize derives the headline counters. ActiveAssignments counts every
// active assignment in scope regardless of date; OverAllocatedDays counts
// (resource, day) cells above 100 across the whole timeline.
func Summarize(resources []*domain.Resource, assignments []*domain.ResourceAssignment, tl Timeline) Summary {
	s := Summary{
		TotalResources:     len(resources),
		SkippedAssignments: tl.Skipped,
	}
	for _, a := range assignments {
		if a.IsActive {
			s.ActiveAssignments++
		}
	}
	for _, perDay := range tl.Daily {
		for _, aggregate := range perDay {
			if aggregate > 100 {
				s.OverAllocatedDays++
			}
		}
	}
	return s
}
