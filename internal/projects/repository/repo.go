package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

// AggregateRepository persists a project together with its budget,
// timeframe and team graph. Every multi-statement write runs inside one
// transaction: all steps commit together or none do.
type AggregateRepository struct {
	db *sql.DB
}

func NewAggregateRepository(db *sql.DB) *AggregateRepository {
	return &AggregateRepository{db: db}
}

// SaveAggregate upserts the whole aggregate and returns the project id.
// Step order matters: the project row must exist before its children.
// Any failure rolls back every step and propagates unchanged.
func (r *AggregateRepository) SaveAggregate(ctx context.Context, detail *domain.ProjectDetail, ownerID int64, status string) (projectID int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if projectID, err = upsertProject(ctx, tx, detail.Project, ownerID, status); err != nil {
		return 0, err
	}
	if err = upsertBudget(ctx, tx, projectID, detail.Budget); err != nil {
		return 0, err
	}
	if err = upsertTimeframe(ctx, tx, projectID, detail.Timeframe); err != nil {
		return 0, err
	}
	if err = replaceTeam(ctx, tx, projectID, detail.TeamMembers); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return projectID, nil
}

func upsertProject(ctx context.Context, tx *sql.Tx, p domain.Project, ownerID int64, status string) (int64, error) {
	if p.ID != 0 {
		var storedOwner int64
		var storedStatus string
		err := tx.QueryRowContext(ctx,
			`SELECT owner_id, status FROM projects WHERE id = $1`, p.ID).
			Scan(&storedOwner, &storedStatus)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("load project %d: %w", p.ID, err)
		}
		if storedOwner != ownerID {
			return 0, domain.ErrForbidden
		}

		// Status only moves forward: submitted never reverts to draft.
		if storedStatus == domain.StatusSubmitted {
			status = domain.StatusSubmitted
		}

		_, err = tx.ExecContext(ctx, `
UPDATE projects
SET name = $1, requirement_description = $2, goal_description = $3, status = $4, updated_at = now()
WHERE id = $5 AND owner_id = $6`,
			p.Name, p.RequirementDescription, p.GoalDescription, status, p.ID, ownerID)
		if err != nil {
			return 0, fmt.Errorf("update project %d: %w", p.ID, err)
		}
		return p.ID, nil
	}

	var id int64
	err := tx.QueryRowContext(ctx, `
INSERT INTO projects (name, requirement_description, goal_description, status, owner_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		p.Name, p.RequirementDescription, p.GoalDescription, status, ownerID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return id, nil
}

// upsertBudget never writes a half-empty budget row: when both bounds are
// absent the step is skipped entirely and an existing row is left alone.
func upsertBudget(ctx context.Context, tx *sql.Tx, projectID int64, b domain.Budget) error {
	if b.Empty() {
		return nil
	}

	var existing int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM budgets WHERE project_id = $1`, projectID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO budgets (project_id, floor, ceiling) VALUES ($1, $2, $3)`,
			projectID, b.Floor, b.Ceiling)
		if err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load budget: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE budgets SET floor = $1, ceiling = $2 WHERE project_id = $3`,
			b.Floor, b.Ceiling, projectID)
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}
	}
	return nil
}

func upsertTimeframe(ctx context.Context, tx *sql.Tx, projectID int64, t domain.Timeframe) error {
	if t.Empty() {
		return nil
	}

	var start, end interface{}
	if t.Start != nil {
		start = t.Start.Time
	}
	if t.End != nil {
		end = t.End.Time
	}

	var existing int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM timeframes WHERE project_id = $1`, projectID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO timeframes (project_id, start_date, end_date) VALUES ($1, $2, $3)`,
			projectID, start, end)
		if err != nil {
			return fmt.Errorf("insert timeframe: %w", err)
		}
	case err != nil:
		return fmt.Errorf("load timeframe: %w", err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE timeframes SET start_date = $1, end_date = $2 WHERE project_id = $3`,
			start, end, projectID)
		if err != nil {
			return fmt.Errorf("update timeframe: %w", err)
		}
	}
	return nil
}

// replaceTeam is a full replacement, not a merge: all membership rows for
// the project's team are deleted and re-inserted. An empty member list
// skips the step so a partial update cannot wipe an existing team. Member
// rows themselves are shared across projects and are never deleted here.
func replaceTeam(ctx context.Context, tx *sql.Tx, projectID int64, members []domain.Member) error {
	if len(members) == 0 {
		return nil
	}

	teamID, err := getOrCreateTeam(ctx, tx, projectID)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("clear team members: %w", err)
	}

	for _, m := range members {
		memberID, err := getOrCreateMember(ctx, tx, m)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_members (team_id, member_id) VALUES ($1, $2)`,
			teamID, memberID); err != nil {
			return fmt.Errorf("add member to team: %w", err)
		}
		if err := replaceMemberSkills(ctx, tx, memberID, m); err != nil {
			return err
		}
	}
	return nil
}

func getOrCreateTeam(ctx context.Context, tx *sql.Tx, projectID int64) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM teams WHERE project_id = $1`, projectID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("load team: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO teams (project_id, name) VALUES ($1, $2) RETURNING id`,
		projectID, "Default Team").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create team: %w", err)
	}
	return id, nil
}

func getOrCreateMember(ctx context.Context, tx *sql.Tx, m domain.Member) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM members WHERE first_name = $1 AND last_name = $2`,
		m.FirstName, m.LastName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("load member: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO members (first_name, last_name) VALUES ($1, $2) RETURNING id`,
		m.FirstName, m.LastName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create member: %w", err)
	}
	return id, nil
}

// replaceMemberSkills keeps the at-most-one-skill-per-category invariant:
// the member's current Language/Framework rows are dropped before the new
// ones are written. A framework of "none" means no framework.
func replaceMemberSkills(ctx context.Context, tx *sql.Tx, memberID int64, m domain.Member) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM skillsets WHERE member_id = $1 AND category IN ('Language', 'Framework')`,
		memberID); err != nil {
		return fmt.Errorf("clear member skills: %w", err)
	}

	if m.Language != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skillsets (member_id, skill, category) VALUES ($1, $2, 'Language')`,
			memberID, m.Language); err != nil {
			return fmt.Errorf("insert language skill: %w", err)
		}
	}
	if m.Framework != "" && !strings.EqualFold(m.Framework, "none") {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO skillsets (member_id, skill, category) VALUES ($1, $2, 'Framework')`,
			memberID, m.Framework); err != nil {
			return fmt.Errorf("insert framework skill: %w", err)
		}
	}
	return nil
}
