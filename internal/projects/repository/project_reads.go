package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

// ListByOwner returns all projects the user owns, newest first.
func (r *AggregateRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	const q = `
SELECT id, name, COALESCE(requirement_description, ''), COALESCE(goal_description, ''), status, owner_id
FROM projects
WHERE owner_id = $1
ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.RequirementDescription, &p.GoalDescription, &p.Status, &p.OwnerID); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Owner returns the owner of a project regardless of who is asking.
// Used for the read-before-delete ownership check.
func (r *AggregateRepository) Owner(ctx context.Context, projectID int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT owner_id FROM projects WHERE id = $1`, projectID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load project owner: %w", err)
	}
	return ownerID, nil
}

// Delete removes a project and, through FK cascade, its children. Returns
// true only when a row matching both id and owner was removed; ownership
// mismatch and not-found both report false.
func (r *AggregateRepository) Delete(ctx context.Context, projectID, ownerID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND owner_id = $2`, projectID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
