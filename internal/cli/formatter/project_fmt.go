package formatter

import (
	"strings"

	"github.com/alexanderramin/allot/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "STATUS", "CREATED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			StatusPill(p.Status),
			Dim(HumanDate(p.CreatedAt)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}
