package repository

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/allot/internal/db"
)

// Store bundles a backend's repositories with its transactor.
type Store struct {
	Repos
	Tx    Transactor
	close func() error
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// NewSQLiteStore wires the SQLite repositories over an open database. The
// store owns the database and closes it on Close.
func NewSQLiteStore(database *sql.DB) *Store {
	return &Store{
		Repos: sqliteRepos(database),
		Tx:    NewSQLiteTransactor(db.NewSQLiteUnitOfWork(database)),
		close: database.Close,
	}
}

func sqliteRepos(tx db.DBTX) Repos {
	return Repos{
		Projects:    NewSQLiteProjectRepo(tx),
		Resources:   NewSQLiteResourceRepo(tx),
		Assignments: NewSQLiteAssignmentRepo(tx),
	}
}

// SQLiteTransactor hands out tx-scoped SQLite repositories.
type SQLiteTransactor struct {
	uow db.UnitOfWork
}

func NewSQLiteTransactor(uow db.UnitOfWork) *SQLiteTransactor {
	return &SQLiteTransactor{uow: uow}
}

func (t *SQLiteTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, sqliteRepos(tx))
	})
}
