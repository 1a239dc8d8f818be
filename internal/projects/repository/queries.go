package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// DetailRow is one row of the left-joining detail read: the project fans
// out to one row per (member, skill) combination, which the service folds
// back into a deduplicated member list.
type DetailRow struct {
	ProjectID              int64
	Name                   string
	RequirementDescription sql.NullString
	GoalDescription        sql.NullString
	Status                 string
	OwnerID                int64
	BudgetFloor            sql.NullFloat64
	BudgetCeiling          sql.NullFloat64
	StartDate              sql.NullTime
	EndDate                sql.NullTime
	MemberName             sql.NullString
	Skill                  sql.NullString
	SkillCategory          sql.NullString
}

// DetailRows reads the full aggregate for a project owned by ownerID.
// An empty result means not-found or not-owned; the two cases are
// indistinguishable here on purpose.
func (r *AggregateRepository) DetailRows(ctx context.Context, projectID, ownerID int64) ([]DetailRow, error) {
	const q = `
SELECT
    p.id,
    p.name,
    p.requirement_description,
    p.goal_description,
    p.status,
    p.owner_id,
    b.floor,
    b.ceiling,
    tf.start_date,
    tf.end_date,
    m.first_name || ' ' || m.last_name AS member,
    s.skill,
    s.category
FROM projects p
LEFT JOIN budgets b ON p.id = b.project_id
LEFT JOIN timeframes tf ON p.id = tf.project_id
LEFT JOIN teams t ON p.id = t.project_id
LEFT JOIN team_members tm ON t.id = tm.team_id
LEFT JOIN members m ON tm.member_id = m.id
LEFT JOIN skillsets s ON m.id = s.member_id AND s.category IN ('Language', 'Framework')
WHERE p.id = $1 AND p.owner_id = $2`

	rows, err := r.db.QueryContext(ctx, q, projectID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query project detail: %w", err)
	}
	defer rows.Close()

	var out []DetailRow
	for rows.Next() {
		var row DetailRow
		if err := rows.Scan(
			&row.ProjectID, &row.Name, &row.RequirementDescription, &row.GoalDescription,
			&row.Status, &row.OwnerID, &row.BudgetFloor, &row.BudgetCeiling,
			&row.StartDate, &row.EndDate, &row.MemberName, &row.Skill, &row.SkillCategory,
		); err != nil {
			return nil, fmt.Errorf("scan project detail: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
