package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

func TestListByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "requirement_description", "goal_description", "status", "owner_id"}).
		AddRow(int64(2), "Second", "", "Goal B", "submitted", int64(9)).
		AddRow(int64(1), "First", "Reqs", "Goal A", "draft", int64(9))
	mock.ExpectQuery(`FROM projects`).
		WithArgs(int64(9)).
		WillReturnRows(rows)

	projects, err := repo.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Second", projects[0].Name)
	assert.Equal(t, "draft", projects[1].Status)
}

func TestListByOwnerEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM projects`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "requirement_description", "goal_description", "status", "owner_id"}))

	projects, err := repo.ListByOwner(context.Background(), 9)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT owner_id FROM projects`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(int64(9)))

	owner, err := repo.Owner(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(9), owner)
}

func TestOwnerNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT owner_id FROM projects`).
		WithArgs(int64(404)).
		WillReturnError(errNoRows())

	_, err := repo.Owner(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(int64(42), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.Delete(context.Background(), 42, 9)
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestDeleteNoMatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(int64(42), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Delete(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDetailRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	cols := []string{"id", "name", "requirement_description", "goal_description", "status", "owner_id",
		"floor", "ceiling", "start_date", "end_date", "member", "skill", "category"}
	rows := sqlmock.NewRows(cols).
		AddRow(int64(42), "Rollout", "Reqs", "Ship", "submitted", int64(9),
			1000.0, 5000.0, nil, nil, "Amara Silva", "Go", "Language").
		AddRow(int64(42), "Rollout", "Reqs", "Ship", "submitted", int64(9),
			1000.0, 5000.0, nil, nil, "Amara Silva", "Gin", "Framework")
	mock.ExpectQuery(`FROM projects p`).
		WithArgs(int64(42), int64(9)).
		WillReturnRows(rows)

	out, err := repo.DetailRows(context.Background(), 42, 9)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Amara Silva", out[0].MemberName.String)
	assert.True(t, out[0].BudgetFloor.Valid)
	assert.False(t, out[0].StartDate.Valid)
}
