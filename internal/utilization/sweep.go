package utilization

import (
	"math"
	"sort"

	"github.com/alexanderramin/allot/internal/domain"
)

// precision bounds the float residue left when +p and -p cancel in the sweep.
const precision = 1e6

// Timeline holds the per-resource, per-day aggregate allocation over a range.
// Aggregates are never clamped; values above 100 mark over-allocation.
// Resources with no overlapping assignment have no entry in Daily.
type Timeline struct {
	Range domain.DateRange
	Daily map[string]map[string]float64

	// Skipped counts active assignments dropped because they were malformed;
	// SkippedIDs lists them sorted by ID.
	Skipped    int
	SkippedIDs []string
}

// Aggregate returns the aggregate allocation for a resource on a day.
func (t Timeline) Aggregate(resourceID string, day string) float64 {
	return t.Daily[resourceID][day]
}

// Compute sweeps the assignments into per-day aggregates over rng.
//
// Each tracked resource gets a difference array over the range, allocated on
// first overlap. An assignment clipped to [s, e] adds +p at s and -p at e+1;
// a prefix sum then yields the aggregate for every day. Work is
// O(assignments + days*resources) and independent of assignment order.
//
// Inactive assignments and assignments for resources not in resources are
// ignored. Malformed active assignments are skipped and counted.
func Compute(resources []*domain.Resource, assignments []*domain.ResourceAssignment, rng domain.DateRange) Timeline {
	rng = domain.NewDateRange(rng.Start, rng.End)
	tl := Timeline{
		Range: rng,
		Daily: make(map[string]map[string]float64),
	}
	days := rng.Days()
	if days == 0 {
		return tl
	}

	tracked := make(map[string]bool, len(resources))
	for _, r := range resources {
		tracked[r.ID] = true
	}

	diffs := make(map[string][]float64)
	for _, a := range assignments {
		if !a.IsActive || !tracked[a.ResourceID] {
			continue
		}
		if a.Malformed() {
			tl.Skipped++
			tl.SkippedIDs = append(tl.SkippedIDs, a.ID)
			continue
		}
		clip := a.Span().Clip(rng)
		if clip.Empty() {
			continue
		}

		diff, ok := diffs[a.ResourceID]
		if !ok {
			// One extra slot absorbs the -p of assignments ending on rng.End.
			diff = make([]float64, days+1)
			diffs[a.ResourceID] = diff
		}
		lo := domain.DaysBetween(rng.Start, clip.Start)
		hi := domain.DaysBetween(rng.Start, clip.End)
		diff[lo] += a.AllocationPercentage
		diff[hi+1] -= a.AllocationPercentage
	}

	for resourceID, diff := range diffs {
		perDay := make(map[string]float64, days)
		running := 0.0
		for i := 0; i < days; i++ {
			running += diff[i]
			perDay[domain.DayKey(rng.Start.AddDate(0, 0, i))] = settle(running)
		}
		tl.Daily[resourceID] = perDay
	}
	sort.Strings(tl.SkippedIDs)
	return tl
}

// DailyUtilizations flattens the timeline into (resource, day, aggregate)
// triples for every tracked resource and every day of the range.
func (t Timeline) DailyUtilizations(resources []*domain.Resource) []domain.DailyUtilization {
	days := t.Range.Days()
	out := make([]domain.DailyUtilization, 0, days*len(resources))
	for _, r := range resources {
		for i := 0; i < days; i++ {
			d := t.Range.Start.AddDate(0, 0, i)
			out = append(out, domain.DailyUtilization{
				ResourceID:          r.ID,
				Date:                d,
				AggregatePercentage: t.Aggregate(r.ID, domain.DayKey(d)),
			})
		}
	}
	return out
}

// settle rounds away float residue so a fully cancelled sum reads as 0.
func settle(v float64) float64 {
	v = math.Round(v*precision) / precision
	if v == 0 {
		return 0
	}
	return v
}
