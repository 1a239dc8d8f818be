package validation

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

// Fields is the normalized result of a successful validation: numeric
// strings coerced to numbers, date strings parsed to dates.
type Fields struct {
	ProjectID              int64
	Name                   string
	RequirementDescription string
	GoalDescription        string
	BudgetFloor            *float64
	BudgetCeiling          *float64
	StartDate              *domain.Date
	EndDate                *domain.Date
	TeamMembers            []domain.Member
}

// Detail assembles the aggregate the repository persists.
func (f *Fields) Detail(ownerID int64, status string) *domain.ProjectDetail {
	return &domain.ProjectDetail{
		Project: domain.Project{
			ID:                     f.ProjectID,
			Name:                   f.Name,
			RequirementDescription: f.RequirementDescription,
			GoalDescription:        f.GoalDescription,
			Status:                 status,
			OwnerID:                ownerID,
		},
		Budget:      domain.Budget{Floor: f.BudgetFloor, Ceiling: f.BudgetCeiling},
		Timeframe:   domain.Timeframe{Start: f.StartDate, End: f.EndDate},
		TeamMembers: f.TeamMembers,
	}
}

// Validate checks the flat request payload and returns the parsed fields.
// Pure function: first failure wins, nothing is partially returned. The
// content policy runs before any field rule so that deny-listed input never
// reaches the rest of the pipeline.
func Validate(payload map[string]interface{}, policy Policy, now time.Time) (*Fields, error) {
	if policy.Violates(payload) {
		return nil, domain.NewValidationError("Input contains invalid or unsupported project topics")
	}

	out := &Fields{}
	out.ProjectID = asID(payload["id"])
	out.RequirementDescription = asString(payload["requirement_description"])

	out.Name = strings.TrimSpace(asString(payload["name"]))
	if out.Name == "" {
		return nil, domain.NewValidationError("Project name is required")
	}

	out.GoalDescription = strings.TrimSpace(asString(payload["goal_description"]))
	if out.GoalDescription == "" {
		return nil, domain.NewValidationError("Goal description is required")
	}

	var err error
	if out.BudgetFloor, err = parseBound(payload["budget_floor"], "Budget floor cannot be negative"); err != nil {
		return nil, err
	}
	if out.BudgetCeiling, err = parseBound(payload["budget_ceiling"], "Budget ceiling cannot be negative"); err != nil {
		return nil, err
	}
	if out.BudgetFloor != nil && out.BudgetCeiling != nil && *out.BudgetFloor > *out.BudgetCeiling {
		return nil, domain.NewValidationError("Budget floor cannot exceed budget ceiling")
	}

	if out.StartDate, err = parseFutureDate(payload["start_date"], now, "Start date must be in the future"); err != nil {
		return nil, err
	}
	if out.EndDate, err = parseFutureDate(payload["end_date"], now, "End date must be in the future"); err != nil {
		return nil, err
	}
	if out.StartDate != nil && out.EndDate != nil && !out.StartDate.Before(out.EndDate.Time) {
		return nil, domain.NewValidationError("Start date must be earlier than end date")
	}

	if out.TeamMembers, err = parseTeamMembers(payload["team_members"]); err != nil {
		return nil, err
	}

	return out, nil
}

func parseBound(value interface{}, negativeMsg string) (*float64, error) {
	if isAbsent(value) {
		return nil, nil
	}
	num, ok := asNumber(value)
	if !ok || num < 0 {
		return nil, domain.NewValidationError(negativeMsg)
	}
	return &num, nil
}

// parseFutureDate accepts a date only when it is not strictly before now.
func parseFutureDate(value interface{}, now time.Time, pastMsg string) (*domain.Date, error) {
	if isAbsent(value) {
		return nil, nil
	}
	raw := asString(value)
	if raw == "" {
		return nil, domain.NewValidationError("Dates must be in format YYYY-MM-DD")
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, domain.NewValidationError("Dates must be in format YYYY-MM-DD")
	}
	if d.Before(now) {
		return nil, domain.NewValidationError(pastMsg)
	}
	return d, nil
}

func parseTeamMembers(value interface{}) ([]domain.Member, error) {
	if value == nil {
		return []domain.Member{}, nil
	}
	list, ok := value.([]interface{})
	if !ok {
		return nil, domain.NewValidationError("team_members must be a list")
	}

	members := make([]domain.Member, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, domain.NewValidationError("team_members must be a list")
		}
		name := strings.TrimSpace(asString(entry["member"]))
		if name == "" {
			continue
		}
		members = append(members, domain.MemberFromFullName(
			name,
			asString(entry["language"]),
			asString(entry["framework"]),
		))
	}
	return members, nil
}

func isAbsent(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

func asString(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func asID(value interface{}) int64 {
	num, ok := asNumber(value)
	if !ok || num <= 0 {
		return 0
	}
	return int64(num)
}
