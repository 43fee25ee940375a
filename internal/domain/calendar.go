package domain

import (
	"fmt"
	"time"
)

// DayLayout is the canonical key format for a calendar day.
const DayLayout = "2006-01-02"

// MonthLayout is the canonical format for a calendar month.
const MonthLayout = "2006-01"

// CivilDate truncates t to its calendar day, expressed at midnight UTC.
// The wall-clock date in t's own location is kept.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey returns the canonical string key for the day containing t.
func DayKey(t time.Time) string {
	return CivilDate(t).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string into a civil date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the number of whole days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants, truncating both to days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CivilDate(start), End: CivilDate(end)}
}

// Days returns the number of days in the range, or 0 if End precedes Start.
func (r DateRange) Days() int {
	n := DaysBetween(r.Start, r.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Empty reports whether the range contains no days.
func (r DateRange) Empty() bool {
	return r.End.Before(r.Start)
}

// Clip returns the intersection of r and other. The result may be Empty.
func (r DateRange) Clip(other DateRange) DateRange {
	out := r
	if other.Start.After(out.Start) {
		out.Start = other.Start
	}
	if other.End.Before(out.End) {
		out.End = other.End
	}
	return out
}

// Contains reports whether the day containing t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := CivilDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// CalendarMonth identifies a single month of a year.
type CalendarMonth struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) CalendarMonth {
	return CalendarMonth{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (CalendarMonth, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return CalendarMonth{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return MonthOf(t), nil
}

// FirstDay returns the first day of the month.
func (m CalendarMonth) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns the last day of the month. Day 0 of the following month
// normalizes to it, so month lengths and leap years come from the calendar.
func (m CalendarMonth) LastDay() time.Time {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Range returns the inclusive day range covering the month.
func (m CalendarMonth) Range() DateRange {
	return DateRange{Start: m.FirstDay(), End: m.LastDay()}
}

func (m CalendarMonth) PreviousMonth() CalendarMonth {
	return MonthOf(m.FirstDay().AddDate(0, -1, 0))
}

func (m CalendarMonth) NextMonth() CalendarMonth {
	return MonthOf(m.FirstDay().AddDate(0, 1, 0))
}

func (m CalendarMonth) String() string {
	return m.FirstDay().Format(MonthLayout)
}

// Title returns a display title such as "February 2025".
func (m CalendarMonth) Title() string {
	return m.FirstDay().Format("January 2006")
}
