package http

import (
	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
)

// detailResponse flattens a project aggregate into the shape the
// frontend consumes: one level, nullable budget and timeframe fields.
type detailResponse struct {
	ID                     int64           `json:"id"`
	Name                   string          `json:"name"`
	RequirementDescription string          `json:"requirement_description"`
	GoalDescription        string          `json:"goal_description"`
	Status                 string          `json:"status"`
	OwnerID                int64           `json:"owner_id"`
	BudgetFloor            *float64        `json:"budget_floor"`
	BudgetCeiling          *float64        `json:"budget_ceiling"`
	StartDate              *domain.Date    `json:"start_date"`
	EndDate                *domain.Date    `json:"end_date"`
	TeamMembers            []domain.Member `json:"team_members"`
	LLMResponse            *string         `json:"llm_response"`
}

func newDetailResponse(d *domain.ProjectDetail) detailResponse {
	resp := detailResponse{
		ID:                     d.Project.ID,
		Name:                   d.Project.Name,
		RequirementDescription: d.Project.RequirementDescription,
		GoalDescription:        d.Project.GoalDescription,
		Status:                 d.Project.Status,
		OwnerID:                d.Project.OwnerID,
		TeamMembers:            d.TeamMembers,
		LLMResponse:            d.LLMResponse,
	}
	resp.BudgetFloor = d.Budget.Floor
	resp.BudgetCeiling = d.Budget.Ceiling
	resp.StartDate = d.Timeframe.Start
	resp.EndDate = d.Timeframe.End
	if resp.TeamMembers == nil {
		resp.TeamMembers = []domain.Member{}
	}
	return resp
}

type projectSummary struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	RequirementDescription string `json:"requirement_description"`
	GoalDescription        string `json:"goal_description"`
	Status                 string `json:"status"`
}

func newProjectSummaries(projects []domain.Project) []projectSummary {
	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectSummary{
			ID:                     p.ID,
			Name:                   p.Name,
			RequirementDescription: p.RequirementDescription,
			GoalDescription:        p.GoalDescription,
			Status:                 p.Status,
		})
	}
	return out
}
