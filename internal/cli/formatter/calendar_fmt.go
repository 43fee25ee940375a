package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/utilization"
	"github.com/charmbracelet/lipgloss"
)

const (
	weekdayHeader   = "Su Mo Tu We Th Fr Sa"
	nameColumnWidth = 14
	loadBarWidth    = 10
)

// FormatCalendar renders the full calendar card: month grid, per-resource
// band rows, legend and summary.
func FormatCalendar(project *domain.Project, cal *utilization.Calendar) string {
	var b strings.Builder
	b.WriteString(CalendarTitle(project, cal))
	b.WriteString("\n\n")
	b.WriteString(FormatCalendarBody(cal))
	return RenderBox("", b.String())
}

// CalendarTitle renders "Name [SHORT] · February 2025" plus the filter when
// one resource is selected.
func CalendarTitle(project *domain.Project, cal *utilization.Calendar) string {
	title := StyleHeader.Render(cal.Month.Title())
	if project != nil {
		title = Bold(project.Name) + " " + Dim("["+project.DisplayID()+"]") + Dim(" · ") + title
	}
	if cal.ResourceFilter != "" && cal.ResourceFilter != utilization.AllResources {
		name := cal.ResourceFilter
		if len(cal.Resources) == 1 {
			name = cal.Resources[0].Name
		}
		title += Dim(" · ") + StyleBlue.Render(name)
	}
	return title
}

// FormatCalendarBody renders everything below the title.
func FormatCalendarBody(cal *utilization.Calendar) string {
	grid := FormatMonthGrid(cal)
	rows := FormatResourceRows(cal)
	top := lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", FormatLegend())

	parts := []string{top}
	if rows != "" {
		parts = append(parts, rows)
	} else {
		parts = append(parts, Dim("No resources in scope."))
	}
	parts = append(parts, FormatSummary(cal.Summary))
	return strings.Join(parts, "\n\n")
}

// FormatMonthGrid renders a Sunday-first month grid. Each day is colored by
// the most loaded resource in scope on that day.
func FormatMonthGrid(cal *utilization.Calendar) string {
	var b strings.Builder
	b.WriteString(StyleDim.Render(weekdayHeader))
	for _, week := range utilization.Weeks(cal.Grid) {
		b.WriteString("\n")
		cells := make([]string, 0, len(week))
		for _, c := range week {
			if c.Blank {
				cells = append(cells, "  ")
				continue
			}
			peak := cal.Peak(c.Key())
			cells = append(cells, BandStyle(peak.Band).Render(fmt.Sprintf("%2d", c.Date.Day())))
		}
		b.WriteString(strings.Join(cells, " "))
	}
	return b.String()
}

// FormatResourceRows renders one strip of band glyphs per resource, one glyph
// per day, followed by the resource's peak load.
func FormatResourceRows(cal *utilization.Calendar) string {
	if len(cal.Resources) == 0 {
		return ""
	}

	days := make([]string, 0, len(cal.Grid))
	for _, c := range cal.Grid {
		if !c.Blank {
			days = append(days, c.Key())
		}
	}

	lines := make([]string, 0, len(cal.Resources))
	for _, r := range cal.Resources {
		var strip strings.Builder
		peak := 0.0
		for _, day := range days {
			cell := cal.Cell(r.ID, day)
			strip.WriteString(BandStyle(cell.Band).Render(BandGlyph(cell.Band)))
			if cell.Aggregate > peak {
				peak = cell.Aggregate
			}
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			padRight(truncate(r.Name, nameColumnWidth), nameColumnWidth),
			strip.String(),
			RenderLoadBar(peak, loadBarWidth),
		))
	}
	return strings.Join(lines, "\n")
}

// FormatLegend lists every band with its marker.
func FormatLegend() string {
	lines := make([]string, 0, len(domain.Bands))
	for _, band := range domain.Bands {
		lines = append(lines, BandIndicator(band))
	}
	return strings.Join(lines, "\n")
}

// FormatSummary renders the headline counters on one line.
func FormatSummary(s utilization.Summary) string {
	over := fmt.Sprintf("%d over-allocated days", s.OverAllocatedDays)
	if s.OverAllocatedDays > 0 {
		over = StyleRed.Render(over)
	} else {
		over = StyleGreen.Render(over)
	}
	parts := []string{
		fmt.Sprintf("%d resources", s.TotalResources),
		fmt.Sprintf("%d active assignments", s.ActiveAssignments),
		over,
	}
	if s.SkippedAssignments > 0 {
		parts = append(parts, StyleYellow.Render(fmt.Sprintf("%d skipped (invalid)", s.SkippedAssignments)))
	}
	return strings.Join(parts, Dim(" · "))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
