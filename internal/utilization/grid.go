package utilization

import (
	"time"

	"github.com/alexanderramin/allot/internal/domain"
)

// GridCell is one cell of a month grid. Leading cells before the first of
// the month are blank and carry a zero Date.
type GridCell struct {
	Date  time.Time
	Blank bool
}

// Key returns the day key for a dated cell, or "" for a blank one.
func (c GridCell) Key() string {
	if c.Blank {
		return ""
	}
	return domain.DayKey(c.Date)
}

// GenerateGrid lays out a month for a 7-column, Sunday-first calendar:
// one blank per weekday before the 1st, then every day of the month.
func GenerateGrid(m domain.CalendarMonth) []GridCell {
	first := m.FirstDay()
	days := m.Range().Days()
	lead := int(first.Weekday())

	cells := make([]GridCell, 0, lead+days)
	for i := 0; i < lead; i++ {
		cells = append(cells, GridCell{Blank: true})
	}
	for i := 0; i < days; i++ {
		cells = append(cells, GridCell{Date: first.AddDate(0, 0, i)})
	}
	return cells
}

// Weeks splits a grid into rows of seven cells. The last row may be short.
func Weeks(cells []GridCell) [][]GridCell {
	var rows [][]GridCell
	for len(cells) > 0 {
		n := min(7, len(cells))
		rows = append(rows, cells[:n])
		cells = cells[n:]
	}
	return rows
}
