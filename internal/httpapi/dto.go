package httpapi

import (
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/utilization"
)

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type resourceDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

func toResourceDTO(r *domain.Resource) resourceDTO {
	return resourceDTO{ID: r.ID, Name: r.Name, Role: r.Role}
}

type assignmentDTO struct {
	ID            string  `json:"id"`
	ResourceID    string  `json:"resource_id"`
	ProjectID     string  `json:"project_id"`
	Title         string  `json:"title,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	AllocationPct float64 `json:"allocation_pct"`
	Active        bool    `json:"active"`
}

func toAssignmentDTO(a *domain.ResourceAssignment) assignmentDTO {
	return assignmentDTO{
		ID:            a.ID,
		ResourceID:    a.ResourceID,
		ProjectID:     a.ProjectID,
		Title:         a.Title,
		StartDate:     domain.DayKey(a.StartDate),
		EndDate:       domain.DayKey(a.EndDate),
		AllocationPct: a.AllocationPercentage,
		Active:        a.IsActive,
	}
}

type dayDTO struct {
	Date      string  `json:"date"`
	Aggregate float64 `json:"aggregate"`
	Display   float64 `json:"display"`
	Band      string  `json:"band"`
}

type resourceRowDTO struct {
	resourceDTO
	Days []dayDTO `json:"days"`
}

type summaryDTO struct {
	TotalResources     int `json:"total_resources"`
	ActiveAssignments  int `json:"active_assignments"`
	OverAllocatedDays  int `json:"over_allocated_days"`
	SkippedAssignments int `json:"skipped_assignments"`
}

type calendarDTO struct {
	Project   string           `json:"project"`
	Month     string           `json:"month"`
	Filter    string           `json:"filter"`
	Weeks     [][]string       `json:"weeks"`
	Resources []resourceRowDTO `json:"resources"`
	Roster    []resourceDTO    `json:"roster"`
	Summary   summaryDTO       `json:"summary"`
}

// toCalendarDTO flattens a calendar for the wire. Weeks hold day keys with
// "" for the leading blanks; resource rows list the days in month order.
func toCalendarDTO(project *domain.Project, cal *utilization.Calendar, roster []*domain.Resource) calendarDTO {
	out := calendarDTO{
		Month:  cal.Month.String(),
		Filter: cal.ResourceFilter,
		Summary: summaryDTO{
			TotalResources:     cal.Summary.TotalResources,
			ActiveAssignments:  cal.Summary.ActiveAssignments,
			OverAllocatedDays:  cal.Summary.OverAllocatedDays,
			SkippedAssignments: cal.Summary.SkippedAssignments,
		},
		Resources: make([]resourceRowDTO, 0, len(cal.Resources)),
		Roster:    make([]resourceDTO, 0, len(roster)),
	}
	if project != nil {
		out.Project = project.DisplayID()
	}

	var days []string
	for _, week := range utilization.Weeks(cal.Grid) {
		keys := make([]string, len(week))
		for i, c := range week {
			keys[i] = c.Key()
			if keys[i] != "" {
				days = append(days, keys[i])
			}
		}
		out.Weeks = append(out.Weeks, keys)
	}

	for _, r := range cal.Resources {
		row := resourceRowDTO{resourceDTO: toResourceDTO(r), Days: make([]dayDTO, 0, len(days))}
		for _, day := range days {
			cell := cal.Cell(r.ID, day)
			row.Days = append(row.Days, dayDTO{
				Date:      day,
				Aggregate: cell.Aggregate,
				Display:   utilization.DisplayPercentage(cell.Aggregate),
				Band:      string(cell.Band),
			})
		}
		out.Resources = append(out.Resources, row)
	}
	for _, r := range roster {
		out.Roster = append(out.Roster, toResourceDTO(r))
	}
	return out
}
