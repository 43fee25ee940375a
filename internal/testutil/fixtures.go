package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resource options
type ResourceOption func(*domain.Resource)

func WithRole(role string) ResourceOption {
	return func(r *domain.Resource) {
		r.Role = role
	}
}

func NewTestResource(name string, opts ...ResourceOption) *domain.Resource {
	now := time.Now().UTC()
	r := &domain.Resource{
		ID:        uuid.New().String(),
		Name:      name,
		Role:      "Engineer",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Assignment options
type AssignmentOption func(*domain.ResourceAssignment)

// WithSpan sets the inclusive day range of the assignment. Dates are
// "2006-01-02" strings; a bad date panics since fixtures are static.
func WithSpan(start, end string) AssignmentOption {
	return func(a *domain.ResourceAssignment) {
		a.StartDate = mustDay(start)
		a.EndDate = mustDay(end)
	}
}

func WithAllocation(pct float64) AssignmentOption {
	return func(a *domain.ResourceAssignment) {
		a.AllocationPercentage = pct
	}
}

func WithTitle(title string) AssignmentOption {
	return func(a *domain.ResourceAssignment) {
		a.Title = title
	}
}

func WithInactive() AssignmentOption {
	return func(a *domain.ResourceAssignment) {
		a.IsActive = false
	}
}

// NewTestAssignment returns an active 50% assignment covering the first
// week of February 2025.
func NewTestAssignment(resourceID, projectID string, opts ...AssignmentOption) *domain.ResourceAssignment {
	now := time.Now().UTC()
	a := &domain.ResourceAssignment{
		ID:                   uuid.New().String(),
		ResourceID:           resourceID,
		ProjectID:            projectID,
		Title:                "Test assignment",
		StartDate:            mustDay("2025-02-01"),
		EndDate:              mustDay("2025-02-07"),
		AllocationPercentage: 50,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func mustDay(s string) time.Time {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}
