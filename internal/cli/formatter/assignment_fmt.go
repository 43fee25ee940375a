package formatter

import (
	"github.com/alexanderramin/allot/internal/domain"
)

// FormatAssignmentList renders a project's assignments. names maps resource
// IDs to display names; unknown IDs are shown truncated.
func FormatAssignmentList(project *domain.Project, assignments []*domain.ResourceAssignment, names map[string]string) string {
	headers := []string{"ID", "RESOURCE", "TITLE", "DATES", "ALLOC", "STATE"}
	rows := make([][]string, 0, len(assignments))

	for _, a := range assignments {
		who, ok := names[a.ResourceID]
		if !ok {
			who = TruncID(a.ResourceID)
		}
		title := a.Title
		if title == "" {
			title = Dim("--")
		}
		dates := DateSpan(a.StartDate, a.EndDate)
		if a.Malformed() {
			dates = StyleRed.Render(dates + " (invalid)")
		}
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(who),
			title,
			dates,
			FormatPercent(a.AllocationPercentage),
			ActivePill(a.IsActive),
		})
	}

	return RenderBox("Assignments · "+project.DisplayID(), RenderTable(headers, rows))
}
