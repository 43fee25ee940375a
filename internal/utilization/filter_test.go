package utilization

import (
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterAssignments_AllIsIdentity(t *testing.T) {
	in := []*domain.ResourceAssignment{
		assign("a1", "r1", "2025-02-01", "2025-02-02", 10),
		assign("a2", "r2", "2025-02-01", "2025-02-02", 20),
	}
	assert.Equal(t, in, FilterAssignments(in, AllResources))
	assert.Equal(t, in, FilterAssignments(in, ""))
}

func TestFilterAssignments_SingleResource(t *testing.T) {
	in := []*domain.ResourceAssignment{
		assign("a1", "r1", "2025-02-01", "2025-02-02", 10),
		assign("a2", "r2", "2025-02-01", "2025-02-02", 20),
		assign("a3", "r1", "2025-02-03", "2025-02-04", 30),
	}
	out := FilterAssignments(in, "r1")

	assert.Len(t, out, 2)
	assert.Equal(t, "a1", out[0].ID)
	assert.Equal(t, "a3", out[1].ID)
	assert.Len(t, in, 3, "input must not be mutated")
	assert.Equal(t, "a2", in[1].ID)
}

func TestFilterAssignments_UnknownResourceYieldsEmpty(t *testing.T) {
	in := []*domain.ResourceAssignment{assign("a1", "r1", "2025-02-01", "2025-02-02", 10)}
	assert.Empty(t, FilterAssignments(in, "nobody"))
}

func TestFilterResources(t *testing.T) {
	rs := res("r1", "r2", "r3")
	assert.Len(t, FilterResources(rs, AllResources), 3)
	out := FilterResources(rs, "r2")
	assert.Len(t, out, 1)
	assert.Equal(t, "r2", out[0].ID)
}
