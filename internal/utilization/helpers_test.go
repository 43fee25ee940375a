package utilization

import (
	"time"

	"github.com/alexanderramin/allot/internal/domain"
)

func day(s string) time.Time {
	t, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func res(ids ...string) []*domain.Resource {
	out := make([]*domain.Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, &domain.Resource{ID: id, Name: "Resource " + id})
	}
	return out
}

func assign(id, resourceID, start, end string, pct float64) *domain.ResourceAssignment {
	return &domain.ResourceAssignment{
		ID:                   id,
		ResourceID:           resourceID,
		ProjectID:            "p-1",
		StartDate:            day(start),
		EndDate:              day(end),
		AllocationPercentage: pct,
		IsActive:             true,
	}
}

var feb2025 = domain.CalendarMonth{Year: 2025, Month: time.February}
