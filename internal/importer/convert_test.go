package importer

import (
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_NewProjectAndResources(t *testing.T) {
	schema := validMinimalSchema()
	schema.Project.ShortID = "web01"

	gen, err := Convert(schema, Existing{})
	require.NoError(t, err)

	assert.True(t, gen.ProjectIsNew)
	assert.NotEmpty(t, gen.Project.ID)
	assert.Equal(t, "WEB01", gen.Project.ShortID)
	assert.Equal(t, domain.ProjectActive, gen.Project.Status)

	require.Len(t, gen.NewResources, 1)
	assert.Equal(t, "Ada", gen.NewResources[0].Name)
	assert.Zero(t, gen.ReusedResources)

	require.Len(t, gen.Assignments, 1)
	a := gen.Assignments[0]
	assert.Equal(t, gen.Project.ID, a.ProjectID)
	assert.Equal(t, gen.NewResources[0].ID, a.ResourceID)
	assert.Equal(t, "2025-02-01", domain.DayKey(a.StartDate))
	assert.Equal(t, "2025-02-04", domain.DayKey(a.EndDate))
	assert.InDelta(t, 60.0, a.AllocationPercentage, 1e-9)
	assert.True(t, a.IsActive)
}

func TestConvert_ReusesExistingProjectAndResourceByName(t *testing.T) {
	proj := &domain.Project{ID: "p-1", ShortID: "WEB01", Name: "Website"}
	ada := &domain.Resource{ID: "r-ada", Name: "ada"}

	gen, err := Convert(validMinimalSchema(), Existing{Project: proj, Resources: []*domain.Resource{ada}})
	require.NoError(t, err)

	assert.False(t, gen.ProjectIsNew)
	assert.Same(t, proj, gen.Project)
	assert.Empty(t, gen.NewResources)
	assert.Equal(t, 1, gen.ReusedResources)
	require.Len(t, gen.Assignments, 1)
	assert.Equal(t, "r-ada", gen.Assignments[0].ResourceID)
	assert.Equal(t, "p-1", gen.Assignments[0].ProjectID)
}

func TestConvert_InactiveAssignment(t *testing.T) {
	schema := validMinimalSchema()
	schema.Assignments[0].Active = ptrBool(false)

	gen, err := Convert(schema, Existing{})
	require.NoError(t, err)
	assert.False(t, gen.Assignments[0].IsActive)
}

func TestConvert_UnresolvedRef(t *testing.T) {
	schema := validMinimalSchema()
	schema.Assignments[0].ResourceRef = "ghost"

	_, err := Convert(schema, Existing{})
	assert.ErrorContains(t, err, "unresolved resource_ref")
}
