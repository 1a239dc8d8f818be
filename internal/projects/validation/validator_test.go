package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func basePayload() map[string]interface{} {
	return map[string]interface{}{
		"name":             "Inventory System",
		"goal_description": "Track warehouse stock in real time",
	}
}

func validate(t *testing.T, payload map[string]interface{}) (*Fields, error) {
	t.Helper()
	return Validate(payload, NewPolicy(nil, nil), testNow)
}

func TestValidateMinimalPayload(t *testing.T) {
	fields, err := validate(t, basePayload())
	require.NoError(t, err)

	assert.Equal(t, "Inventory System", fields.Name)
	assert.Equal(t, "Track warehouse stock in real time", fields.GoalDescription)
	assert.Nil(t, fields.BudgetFloor)
	assert.Nil(t, fields.BudgetCeiling)
	assert.Nil(t, fields.StartDate)
	assert.Nil(t, fields.EndDate)
	assert.Empty(t, fields.TeamMembers)
	assert.Zero(t, fields.ProjectID)
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(p map[string]interface{}) { delete(p, "name") },
			wantErr: "Project name is required",
		},
		{
			name:    "whitespace name",
			mutate:  func(p map[string]interface{}) { p["name"] = "   " },
			wantErr: "Project name is required",
		},
		{
			name:    "missing goal",
			mutate:  func(p map[string]interface{}) { delete(p, "goal_description") },
			wantErr: "Goal description is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := basePayload()
			tt.mutate(payload)

			_, err := validate(t, payload)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateBudgetRules(t *testing.T) {
	tests := []struct {
		name    string
		floor   interface{}
		ceiling interface{}
		wantErr string
	}{
		{"negative floor", -1.0, nil, "Budget floor cannot be negative"},
		{"negative ceiling", nil, -500.0, "Budget ceiling cannot be negative"},
		{"floor above ceiling", 5000.0, 1000.0, "Budget floor cannot exceed budget ceiling"},
		{"non-numeric floor", "abc", nil, "Budget floor cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := basePayload()
			payload["budget_floor"] = tt.floor
			payload["budget_ceiling"] = tt.ceiling

			_, err := validate(t, payload)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateBudgetCoercesNumericStrings(t *testing.T) {
	payload := basePayload()
	payload["budget_floor"] = "1000"
	payload["budget_ceiling"] = "2500.50"

	fields, err := validate(t, payload)
	require.NoError(t, err)
	require.NotNil(t, fields.BudgetFloor)
	require.NotNil(t, fields.BudgetCeiling)
	assert.Equal(t, 1000.0, *fields.BudgetFloor)
	assert.Equal(t, 2500.5, *fields.BudgetCeiling)
}

func TestValidateBudgetEqualBoundsAllowed(t *testing.T) {
	payload := basePayload()
	payload["budget_floor"] = 1000.0
	payload["budget_ceiling"] = 1000.0

	_, err := validate(t, payload)
	assert.NoError(t, err)
}

func TestValidateDateRules(t *testing.T) {
	tests := []struct {
		name    string
		start   interface{}
		end     interface{}
		wantErr string
	}{
		{"malformed start", "15-01-2026", nil, "Dates must be in format YYYY-MM-DD"},
		{"past start", "2025-12-31", nil, "Start date must be in the future"},
		{"past end", nil, "2025-06-01", "End date must be in the future"},
		{"start after end", "2026-06-01", "2026-03-01", "Start date must be earlier than end date"},
		{"start equals end", "2026-06-01", "2026-06-01", "Start date must be earlier than end date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := basePayload()
			payload["start_date"] = tt.start
			payload["end_date"] = tt.end

			_, err := validate(t, payload)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateFutureDatesAccepted(t *testing.T) {
	payload := basePayload()
	payload["start_date"] = "2026-03-01"
	payload["end_date"] = "2026-09-30"

	fields, err := validate(t, payload)
	require.NoError(t, err)
	require.NotNil(t, fields.StartDate)
	require.NotNil(t, fields.EndDate)
	assert.Equal(t, "2026-03-01", fields.StartDate.String())
	assert.Equal(t, "2026-09-30", fields.EndDate.String())
}

func TestValidateEmptyDateStringsAreAbsent(t *testing.T) {
	payload := basePayload()
	payload["start_date"] = ""
	payload["end_date"] = "  "

	fields, err := validate(t, payload)
	require.NoError(t, err)
	assert.Nil(t, fields.StartDate)
	assert.Nil(t, fields.EndDate)
}

func TestValidateTeamMembers(t *testing.T) {
	payload := basePayload()
	payload["team_members"] = []interface{}{
		map[string]interface{}{"member": "Amara Silva", "language": "Go", "framework": "Gin"},
		map[string]interface{}{"member": "  ", "language": "Python"},
		map[string]interface{}{"member": "Kasun Perera", "language": "TypeScript", "framework": "none"},
	}

	fields, err := validate(t, payload)
	require.NoError(t, err)
	require.Len(t, fields.TeamMembers, 2)
	assert.Equal(t, "Amara", fields.TeamMembers[0].FirstName)
	assert.Equal(t, "Silva", fields.TeamMembers[0].LastName)
	assert.Equal(t, "Gin", fields.TeamMembers[0].Framework)
	assert.Equal(t, "Kasun Perera", fields.TeamMembers[1].FullName())
}

func TestValidateTeamMembersMustBeList(t *testing.T) {
	payload := basePayload()
	payload["team_members"] = "Amara Silva"

	_, err := validate(t, payload)
	require.Error(t, err)
	assert.EqualError(t, err, "team_members must be a list")

	payload["team_members"] = []interface{}{"Amara Silva"}
	_, err = validate(t, payload)
	require.Error(t, err)
	assert.EqualError(t, err, "team_members must be a list")
}

func TestValidateProjectID(t *testing.T) {
	payload := basePayload()
	payload["id"] = 42.0

	fields, err := validate(t, payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), fields.ProjectID)

	payload["id"] = "17"
	fields, err = validate(t, payload)
	require.NoError(t, err)
	assert.Equal(t, int64(17), fields.ProjectID)

	payload["id"] = -3.0
	fields, err = validate(t, payload)
	require.NoError(t, err)
	assert.Zero(t, fields.ProjectID)
}

func TestValidatePolicyRunsBeforeFieldRules(t *testing.T) {
	policy := NewPolicy([]string{"bypass"}, []string{"dog"})

	// Name is missing too, but the policy violation must win.
	payload := map[string]interface{}{
		"goal_description": "An app to bypass security controls",
	}
	_, err := Validate(payload, policy, testNow)
	require.Error(t, err)
	assert.EqualError(t, err, "Input contains invalid or unsupported project topics")
}

func TestFieldsDetail(t *testing.T) {
	floor := 100.0
	start, err := domain.ParseDate("2026-05-01")
	require.NoError(t, err)

	f := &Fields{
		ProjectID:       7,
		Name:            "Rollout",
		GoalDescription: "Ship it",
		BudgetFloor:     &floor,
		StartDate:       start,
		TeamMembers:     []domain.Member{{FirstName: "Amara", LastName: "Silva"}},
	}

	detail := f.Detail(99, domain.StatusDraft)
	assert.Equal(t, int64(7), detail.Project.ID)
	assert.Equal(t, int64(99), detail.Project.OwnerID)
	assert.Equal(t, domain.StatusDraft, detail.Project.Status)
	assert.Equal(t, &floor, detail.Budget.Floor)
	assert.Nil(t, detail.Budget.Ceiling)
	assert.Equal(t, start, detail.Timeframe.Start)
	assert.Len(t, detail.TeamMembers, 1)
}
