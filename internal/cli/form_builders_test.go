package cli

import (
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentDraft_Incomplete(t *testing.T) {
	full := assignmentDraft{Resource: "Ada", Start: "2025-02-03", End: "2025-02-07", Pct: "50"}
	assert.False(t, full.incomplete())

	missingPct := full
	missingPct.Pct = ""
	assert.True(t, missingPct.incomplete())

	// Title is optional.
	full.Title = ""
	assert.False(t, full.incomplete())
}

func TestAssignmentDraft_Input(t *testing.T) {
	d := assignmentDraft{Title: " Build ", Start: "2025-02-03", End: " 2025-02-07", Pct: "62.5%"}
	in, err := d.input("p1", "r1")
	require.NoError(t, err)

	assert.Equal(t, "p1", in.ProjectID)
	assert.Equal(t, "r1", in.ResourceID)
	assert.Equal(t, "Build", in.Title)
	assert.Equal(t, "2025-02-07", in.EndDate)
	assert.InDelta(t, 62.5, in.AllocationPct, 1e-9)

	_, err = assignmentDraft{Pct: "lots"}.input("p1", "r1")
	assert.ErrorContains(t, err, "invalid percentage")
}

func TestFormValidators(t *testing.T) {
	assert.NoError(t, validateDate("2025-02-03"))
	assert.Error(t, validateDate("03/02/2025"))
	assert.Error(t, validateDate(""))

	assert.NoError(t, validatePercent("0"))
	assert.NoError(t, validatePercent("100"))
	assert.NoError(t, validatePercent("50%"))
	assert.Error(t, validatePercent("101"))
	assert.Error(t, validatePercent("-1"))
	assert.Error(t, validatePercent("half"))
}

func TestAssignmentForm_Builds(t *testing.T) {
	draft := &assignmentDraft{}
	form := assignmentForm([]*domain.Resource{{ID: "r1", Name: "Ada", Role: "Engineer"}}, draft)
	require.NotNil(t, form)
}
