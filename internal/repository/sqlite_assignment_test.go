package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignmentFixture struct {
	db       *sql.DB
	repo     *SQLiteAssignmentRepo
	project  *domain.Project
	resource *domain.Resource
}

func newAssignmentFixture(t *testing.T) assignmentFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Web")
	res := testutil.NewTestResource("Ada")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	require.NoError(t, NewSQLiteResourceRepo(db).Create(ctx, res))

	return assignmentFixture{db: db, repo: NewSQLiteAssignmentRepo(db), project: proj, resource: res}
}

func TestAssignmentRepo_CreateAndGetByID(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	a := testutil.NewTestAssignment(f.resource.ID, f.project.ID,
		testutil.WithSpan("2025-02-03", "2025-02-14"),
		testutil.WithAllocation(62.5),
		testutil.WithTitle("Checkout redesign"),
	)
	require.NoError(t, f.repo.Create(ctx, a))

	fetched, err := f.repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkout redesign", fetched.Title)
	assert.Equal(t, "2025-02-03", domain.DayKey(fetched.StartDate))
	assert.Equal(t, "2025-02-14", domain.DayKey(fetched.EndDate))
	assert.InDelta(t, 62.5, fetched.AllocationPercentage, 1e-9)
	assert.True(t, fetched.IsActive)
}

func TestAssignmentRepo_GetByID_NotFound(t *testing.T) {
	f := newAssignmentFixture(t)

	_, err := f.repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentRepo_ListByProject_IncludesInactiveAndOrdersByStart(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	late := testutil.NewTestAssignment(f.resource.ID, f.project.ID, testutil.WithSpan("2025-03-01", "2025-03-05"))
	early := testutil.NewTestAssignment(f.resource.ID, f.project.ID,
		testutil.WithSpan("2025-01-10", "2025-01-12"),
		testutil.WithInactive(),
	)
	require.NoError(t, f.repo.Create(ctx, late))
	require.NoError(t, f.repo.Create(ctx, early))

	other := testutil.NewTestProject("Other")
	require.NoError(t, NewSQLiteProjectRepo(f.db).Create(ctx, other))
	require.NoError(t, f.repo.Create(ctx, testutil.NewTestAssignment(f.resource.ID, other.ID)))

	list, err := f.repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.False(t, list[0].IsActive)
	assert.Equal(t, late.ID, list[1].ID)
}

func TestAssignmentRepo_ListByResource(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	bob := testutil.NewTestResource("Bob")
	require.NoError(t, NewSQLiteResourceRepo(f.db).Create(ctx, bob))
	require.NoError(t, f.repo.Create(ctx, testutil.NewTestAssignment(f.resource.ID, f.project.ID)))
	require.NoError(t, f.repo.Create(ctx, testutil.NewTestAssignment(bob.ID, f.project.ID)))

	list, err := f.repo.ListByResource(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, bob.ID, list[0].ResourceID)
}

// Rows written by other tools may carry inverted dates; they must still load
// so aggregation can skip and count them.
func TestAssignmentRepo_StoresInvertedRange(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	a := testutil.NewTestAssignment(f.resource.ID, f.project.ID, testutil.WithSpan("2025-02-10", "2025-02-01"))
	require.NoError(t, f.repo.Create(ctx, a))

	fetched, err := f.repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Malformed())
}

func TestAssignmentRepo_Update(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	a := testutil.NewTestAssignment(f.resource.ID, f.project.ID)
	require.NoError(t, f.repo.Create(ctx, a))

	a.IsActive = false
	a.AllocationPercentage = 20
	require.NoError(t, f.repo.Update(ctx, a))

	fetched, err := f.repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive)
	assert.InDelta(t, 20.0, fetched.AllocationPercentage, 1e-9)

	missing := testutil.NewTestAssignment(f.resource.ID, f.project.ID)
	assert.ErrorIs(t, f.repo.Update(ctx, missing), ErrNotFound)
}

func TestAssignmentRepo_Delete(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := context.Background()

	a := testutil.NewTestAssignment(f.resource.ID, f.project.ID)
	require.NoError(t, f.repo.Create(ctx, a))
	require.NoError(t, f.repo.Delete(ctx, a.ID))

	assert.ErrorIs(t, f.repo.Delete(ctx, a.ID), ErrNotFound)
}

func TestAssignmentRepo_RejectsUnknownResource(t *testing.T) {
	f := newAssignmentFixture(t)

	err := f.repo.Create(context.Background(), testutil.NewTestAssignment("ghost", f.project.ID))
	assert.Error(t, err)
}
