package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AppendPrompt stores a new immutable prompt version for the project.
// Versions start at 1 and increase strictly per project; rows are never
// updated or deleted.
func (r *AggregateRepository) AppendPrompt(ctx context.Context, projectID int64, prompt string) (promptID int64, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var maxVersion int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM prompts WHERE project_id = $1`, projectID).
		Scan(&maxVersion)
	if err != nil {
		return 0, fmt.Errorf("load prompt version: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO prompts (project_id, prompt, version) VALUES ($1, $2, $3) RETURNING id`,
		projectID, prompt, maxVersion+1).Scan(&promptID)
	if err != nil {
		return 0, fmt.Errorf("insert prompt: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return promptID, nil
}

// AppendGeneration records the raw LLM response as an audit row.
func (r *AggregateRepository) AppendGeneration(ctx context.Context, projectID, promptID int64, response string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO generation_history (project_id, prompt_id, llm_response) VALUES ($1, $2, $3)`,
		projectID, promptID, response)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

// LatestGeneration returns the most recent response for a project, or nil
// when the project has never been through generation.
func (r *AggregateRepository) LatestGeneration(ctx context.Context, projectID int64) (*string, error) {
	var response string
	err := r.db.QueryRowContext(ctx, `
SELECT llm_response
FROM generation_history
WHERE project_id = $1
ORDER BY created_at DESC
LIMIT 1`, projectID).Scan(&response)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest generation: %w", err)
	}
	return &response, nil
}
