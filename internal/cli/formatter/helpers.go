package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate renders a civil day such as "Feb 3, 2025".
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DateSpan renders an inclusive day range, collapsing single days.
func DateSpan(start, end time.Time) string {
	if domain.DayKey(start) == domain.DayKey(end) {
		return domain.DayKey(start)
	}
	return domain.DayKey(start) + " → " + domain.DayKey(end)
}

// FormatPercent renders an allocation percentage without trailing zeros:
// 50 -> "50%", 12.5 -> "12.5%".
func FormatPercent(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ActivePill marks an assignment as counting toward utilization or not.
func ActivePill(active bool) string {
	if active {
		return StyleGreen.Render("● active")
	}
	return StyleDim.Render("○ inactive")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
