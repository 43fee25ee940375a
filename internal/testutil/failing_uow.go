package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/allot/internal/db"
)

// FailingWriteUoW runs transactions against DB but fails the FailOn-th write
// (ExecContext) with Err. Import and other multi-row writers use it to check
// that a late failure leaves no projects, resources or assignments behind.
// Reads are never counted.
type FailingWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	writes atomic.Int32
}

// Writes reports how many writes the last transaction attempted, including
// the failed one.
func (u *FailingWriteUoW) Writes() int {
	return int(u.writes.Load())
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	u.writes.Store(0)
	if fnErr := fn(ctx, &failingWrites{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	uow *FailingWriteUoW
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.writes.Add(1) == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
