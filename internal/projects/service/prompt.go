package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/validation"
)

// buildTeamSummary renders one line per member for the prompt.
func buildTeamSummary(members []domain.Member) string {
	lines := make([]string, 0, len(members))
	for _, m := range members {
		lines = append(lines, fmt.Sprintf("- %s: Language: %s, Framework: %s",
			m.FullName(), orNA(m.Language), orNA(m.Framework)))
	}
	return strings.Join(lines, "\n")
}

// buildPlanPrompt turns the validated project fields into the natural
// language prompt stored in the version history.
func buildPlanPrompt(f *validation.Fields) string {
	return fmt.Sprintf(`
Analyze the following software project and act as an expert AI Project Manager.

Project Name: %s
Project Goal: %s
Requirements: %s
Budget: %s to %s
Timeline: %s to %s

Team Members and Skills:
%s

Your tasks:
1. Recommend the best-fit programming languages, frameworks, and tools for frontend, backend, database, and devops.
2. Assign clear roles to each team member based on their skills (e.g., Backend Developer, Frontend Developer, Full-Stack, DevOps, QA, Tech Lead).
3. Provide a high-level project plan and milestone-based timeline.
4. Mention potential risks and mitigation strategies.

Return a single, well-structured answer in Markdown with clear headings and bullet points.
`,
		f.Name,
		f.GoalDescription,
		orNA(f.RequirementDescription),
		formatBound(f.BudgetFloor),
		formatBound(f.BudgetCeiling),
		formatDate(f.StartDate),
		formatDate(f.EndDate),
		buildTeamSummary(f.TeamMembers),
	)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func formatBound(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatDate(d *domain.Date) string {
	if d == nil {
		return "N/A"
	}
	return d.String()
}
