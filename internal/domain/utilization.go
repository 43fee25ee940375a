package domain

import "time"

// DailyUtilization is the derived aggregate allocation of one resource on
// one day. It is recomputed for every view and never stored.
type DailyUtilization struct {
	ResourceID          string
	Date                time.Time
	AggregatePercentage float64
}
