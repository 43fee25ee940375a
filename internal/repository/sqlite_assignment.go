package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/allot/internal/db"
	"github.com/alexanderramin/allot/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

const assignmentColumns = `id, resource_id, project_id, title, start_date, end_date,
	allocation_pct, is_active, created_at, updated_at`

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.ResourceAssignment) error {
	query := `INSERT INTO resource_assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ResourceID,
		a.ProjectID,
		a.Title,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
		a.AllocationPercentage,
		boolToInt(a.IsActive),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.ResourceAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM resource_assignments WHERE id = ?`
	return r.scanAssignment(r.db.QueryRowContext(ctx, query, id))
}

// ListByProject returns all assignments of a project, active or not,
// ordered by start date.
func (r *SQLiteAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ResourceAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM resource_assignments
		WHERE project_id = ? ORDER BY start_date, id`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteAssignmentRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.ResourceAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM resource_assignments
		WHERE resource_id = ? ORDER BY start_date, id`
	return r.list(ctx, query, resourceID)
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.ResourceAssignment) error {
	query := `UPDATE resource_assignments SET resource_id = ?, title = ?, start_date = ?, end_date = ?,
		allocation_pct = ?, is_active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.ResourceID,
		a.Title,
		a.StartDate.Format(dateLayout),
		a.EndDate.Format(dateLayout),
		a.AllocationPercentage,
		boolToInt(a.IsActive),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	return requireAffected(res, "assignment")
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resource_assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return requireAffected(res, "assignment")
}

func (r *SQLiteAssignmentRepo) list(ctx context.Context, query string, args ...any) ([]*domain.ResourceAssignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.ResourceAssignment
	for rows.Next() {
		a, err := r.scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

func (r *SQLiteAssignmentRepo) scanAssignment(row scanner) (*domain.ResourceAssignment, error) {
	var a domain.ResourceAssignment
	var startStr, endStr, createdAtStr, updatedAtStr string
	var isActive int

	err := row.Scan(
		&a.ID, &a.ResourceID, &a.ProjectID, &a.Title,
		&startStr, &endStr,
		&a.AllocationPercentage, &isActive,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assignment %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	a.IsActive = intToBool(isActive)

	var parseErr error
	a.StartDate, parseErr = time.Parse(dateLayout, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	a.EndDate, parseErr = time.Parse(dateLayout, endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	if err := parseTimestamps(createdAtStr, updatedAtStr, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
