package formatter

import "github.com/alexanderramin/allot/internal/domain"

// FormatResourceList renders resources with their short IDs and roles.
func FormatResourceList(resources []*domain.Resource) string {
	headers := []string{"ID", "NAME", "ROLE"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		role := r.Role
		if role == "" {
			role = Dim("--")
		}
		rows = append(rows, []string{TruncID(r.ID), Bold(r.Name), role})
	}
	return RenderBox("Resources", RenderTable(headers, rows))
}
