package utilization

import (
	"github.com/alexanderramin/allot/internal/domain"
)

// Cell is the utilization of one resource on one day.
type Cell struct {
	Aggregate float64
	Band      domain.UtilizationBand
}

// BuildInput is an immutable snapshot of everything a calendar needs.
type BuildInput struct {
	Month          domain.CalendarMonth
	ResourceFilter string
	Resources      []*domain.Resource
	Assignments    []*domain.ResourceAssignment
}

// Calendar is the computed month view for one project and resource filter.
type Calendar struct {
	Month          domain.CalendarMonth
	ResourceFilter string
	Grid           []GridCell
	Resources      []*domain.Resource

	// Cells is keyed by resource ID then day key and covers every resource
	// in scope for every day of the month.
	Cells   map[string]map[string]Cell
	Summary Summary

	// Skipped holds the IDs of malformed assignments left out of the sweep.
	Skipped []string
}

// Cell returns the cell for a resource and day key, or a zero "none" cell.
func (c *Calendar) Cell(resourceID, day string) Cell {
	if cell, ok := c.Cells[resourceID][day]; ok {
		return cell
	}
	return Cell{Band: domain.BandNone}
}

// Build filters the snapshot, sweeps it over the month, classifies every
// (resource, day) cell and summarizes the result. It holds no state between
// calls: equal inputs always give equal calendars.
func Build(in BuildInput) *Calendar {
	filter := in.ResourceFilter
	if filter == "" {
		filter = AllResources
	}
	resources := FilterResources(in.Resources, filter)
	assignments := FilterAssignments(in.Assignments, filter)

	rng := in.Month.Range()
	tl := Compute(resources, assignments, rng)

	days := rng.Days()
	cells := make(map[string]map[string]Cell, len(resources))
	for _, r := range resources {
		perDay := make(map[string]Cell, days)
		for i := 0; i < days; i++ {
			key := domain.DayKey(rng.Start.AddDate(0, 0, i))
			aggregate := tl.Aggregate(r.ID, key)
			perDay[key] = Cell{Aggregate: aggregate, Band: Classify(aggregate)}
		}
		cells[r.ID] = perDay
	}

	return &Calendar{
		Month:          in.Month,
		ResourceFilter: filter,
		Grid:           GenerateGrid(in.Month),
		Resources:      resources,
		Cells:          cells,
		Summary:        Summarize(resources, assignments, tl),
		Skipped:        tl.SkippedIDs,
	}
}

// BandCounts tallies the cells of one resource by band.
func (c *Calendar) BandCounts(resourceID string) map[domain.UtilizationBand]int {
	counts := make(map[domain.UtilizationBand]int, len(domain.Bands))
	for _, cell := range c.Cells[resourceID] {
		counts[cell.Band]++
	}
	return counts
}

// Peak returns the most loaded cell across the resources in scope on day.
func (c *Calendar) Peak(day string) Cell {
	peak := Cell{Band: domain.BandNone}
	for _, r := range c.Resources {
		if cell := c.Cell(r.ID, day); cell.Aggregate > peak.Aggregate {
			peak = cell
		}
	}
	return peak
}
