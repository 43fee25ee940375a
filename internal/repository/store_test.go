package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/allot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTransactor_CommitsAllWrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := NewSQLiteTransactor(testutil.NewTestUoW(db))
	ctx := context.Background()

	proj := testutil.NewTestProject("Web")
	res := testutil.NewTestResource("Ada")
	err := tx.WithinTx(ctx, func(ctx context.Context, repos Repos) error {
		if err := repos.Projects.Create(ctx, proj); err != nil {
			return err
		}
		if err := repos.Resources.Create(ctx, res); err != nil {
			return err
		}
		return repos.Assignments.Create(ctx, testutil.NewTestAssignment(res.ID, proj.ID))
	})
	require.NoError(t, err)

	list, err := NewSQLiteAssignmentRepo(db).ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteTransactor_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	tx := NewSQLiteTransactor(testutil.NewTestUoW(db))
	ctx := context.Background()
	boom := errors.New("boom")

	res := testutil.NewTestResource("Ada")
	err := tx.WithinTx(ctx, func(ctx context.Context, repos Repos) error {
		if err := repos.Resources.Create(ctx, res); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := NewSQLiteResourceRepo(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteStore_Close(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSQLiteStore(database)

	require.NoError(t, store.Close())
	_, err := store.Resources.List(context.Background())
	assert.Error(t, err)
}
