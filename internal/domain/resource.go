package domain

import "time"

// Resource is a person or unit whose capacity is scheduled across assignments.
type Resource struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
