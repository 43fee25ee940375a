package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alexanderramin/allot/internal/db"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/repository"
	"github.com/alexanderramin/allot/internal/testutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (
	repository.ProjectRepo,
	repository.ResourceRepo,
	repository.AssignmentRepo,
	db.UnitOfWork,
) {
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteProjectRepo(database),
		repository.NewSQLiteResourceRepo(database),
		repository.NewSQLiteAssignmentRepo(database),
		testutil.NewTestUoW(database)
}

// captureLogs returns a context whose ctxlog logger writes JSON into the
// returned buffer.
func captureLogs() (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.With(context.Background(), logger), &buf
}

func seedProject(t *testing.T, projects repository.ProjectRepo, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, projects.Create(context.Background(), p))
	return p
}

func seedResource(t *testing.T, resources repository.ResourceRepo, name string) *domain.Resource {
	t.Helper()
	r := testutil.NewTestResource(name)
	require.NoError(t, resources.Create(context.Background(), r))
	return r
}

func seedAssignment(t *testing.T, assignments repository.AssignmentRepo, resourceID, projectID string, opts ...testutil.AssignmentOption) *domain.ResourceAssignment {
	t.Helper()
	a := testutil.NewTestAssignment(resourceID, projectID, opts...)
	require.NoError(t, assignments.Create(context.Background(), a))
	return a
}
