package utilization

import (
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FillsEveryCellForResourcesInScope(t *testing.T) {
	cal := Build(BuildInput{
		Month:     feb2025,
		Resources: res("r1", "r2"),
		Assignments: []*domain.ResourceAssignment{
			assign("a1", "r1", "2025-02-03", "2025-02-04", 90),
		},
	})

	assert.Equal(t, AllResources, cal.ResourceFilter)
	assert.Len(t, cal.Grid, 34)
	require.Len(t, cal.Cells, 2)
	assert.Len(t, cal.Cells["r1"], 28)
	assert.Len(t, cal.Cells["r2"], 28)
	assert.Equal(t, Cell{Aggregate: 90, Band: domain.BandHeavy}, cal.Cell("r1", "2025-02-03"))
	assert.Equal(t, Cell{Band: domain.BandNone}, cal.Cell("r2", "2025-02-03"))
	assert.Equal(t, Cell{Band: domain.BandNone}, cal.Cell("nobody", "2025-02-03"))
}

func TestBuild_ResourceFilterNarrowsScopeAndSummary(t *testing.T) {
	in := BuildInput{
		Month:          feb2025,
		ResourceFilter: "r2",
		Resources:      res("r1", "r2"),
		Assignments: []*domain.ResourceAssignment{
			assign("a1", "r1", "2025-02-01", "2025-02-28", 150),
			assign("a2", "r2", "2025-02-01", "2025-02-02", 110),
		},
	}
	cal := Build(in)

	require.Len(t, cal.Resources, 1)
	assert.Equal(t, "r2", cal.Resources[0].ID)
	assert.NotContains(t, cal.Cells, "r1")
	assert.Equal(t, Summary{TotalResources: 1, ActiveAssignments: 1, OverAllocatedDays: 2}, cal.Summary)
}

func TestBuild_EmptyScope(t *testing.T) {
	cal := Build(BuildInput{Month: feb2025})
	assert.Empty(t, cal.Cells)
	assert.Equal(t, Summary{}, cal.Summary)
	assert.Len(t, cal.Grid, 34)
}

func TestBuild_Idempotent(t *testing.T) {
	in := BuildInput{
		Month:     feb2025,
		Resources: res("r1"),
		Assignments: []*domain.ResourceAssignment{
			assign("a1", "r1", "2025-02-01", "2025-02-10", 60),
			assign("a2", "r1", "2025-02-05", "2025-02-15", 50),
		},
	}
	assert.Equal(t, Build(in), Build(in))
}

func TestCalendar_BandCounts(t *testing.T) {
	cal := Build(BuildInput{
		Month:     feb2025,
		Resources: res("R1"),
		Assignments: []*domain.ResourceAssignment{
			assign("A", "R1", "2025-02-01", "2025-02-10", 60),
			assign("B", "R1", "2025-02-05", "2025-02-15", 50),
		},
	})
	counts := cal.BandCounts("R1")
	assert.Equal(t, 4, counts[domain.BandModerate])
	assert.Equal(t, 6, counts[domain.BandOver])
	assert.Equal(t, 5, counts[domain.BandLight])
	assert.Equal(t, 13, counts[domain.BandNone])
}

func TestCalendar_Peak(t *testing.T) {
	cal := Build(BuildInput{
		Month:     feb2025,
		Resources: res("r1", "r2"),
		Assignments: []*domain.ResourceAssignment{
			assign("a1", "r1", "2025-02-03", "2025-02-04", 40),
			assign("a2", "r2", "2025-02-04", "2025-02-04", 85),
		},
	})

	assert.Equal(t, Cell{Aggregate: 40, Band: domain.BandLight}, cal.Peak("2025-02-03"))
	assert.Equal(t, Cell{Aggregate: 85, Band: domain.BandHeavy}, cal.Peak("2025-02-04"))
	assert.Equal(t, Cell{Band: domain.BandNone}, cal.Peak("2025-02-05"))
}
