package service

import (
	"context"
	"time"

	"github.com/jenga-25-26J/jenga-backend/internal/platform/logger"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/cache"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/domain"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/repository"
	"github.com/jenga-25-26J/jenga-backend/internal/projects/validation"
)

// AggregateStore is what the workflow needs from persistence.
type AggregateStore interface {
	SaveAggregate(ctx context.Context, detail *domain.ProjectDetail, ownerID int64, status string) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error)
	DetailRows(ctx context.Context, projectID, ownerID int64) ([]repository.DetailRow, error)
	Owner(ctx context.Context, projectID int64) (int64, error)
	Delete(ctx context.Context, projectID, ownerID int64) (bool, error)
	AppendPrompt(ctx context.Context, projectID int64, prompt string) (int64, error)
	AppendGeneration(ctx context.Context, projectID, promptID int64, response string) error
	LatestGeneration(ctx context.Context, projectID int64) (*string, error)
}

// PlanGenerator is the external LLM collaborator.
type PlanGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProjectService orchestrates validation, persistence and plan generation.
type ProjectService struct {
	store  AggregateStore
	llm    PlanGenerator
	cache  *cache.GenerationCache
	policy validation.Policy
	log    *logger.Logger
	now    func() time.Time
}

func NewProjectService(store AggregateStore, llm PlanGenerator, genCache *cache.GenerationCache, policy validation.Policy, log *logger.Logger) *ProjectService {
	return &ProjectService{
		store:  store,
		llm:    llm,
		cache:  genCache,
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

// SaveDraft validates the payload and persists the aggregate with draft
// status. Returns the project id, newly assigned on first save.
func (s *ProjectService) SaveDraft(ctx context.Context, payload map[string]interface{}, ownerID int64) (int64, error) {
	fields, err := validation.Validate(payload, s.policy, s.now())
	if err != nil {
		return 0, err
	}

	projectID, err := s.store.SaveAggregate(ctx, fields.Detail(ownerID, domain.StatusDraft), ownerID, domain.StatusDraft)
	if err != nil {
		return 0, err
	}

	s.log.Info("project draft saved", "project_id", projectID)
	return projectID, nil
}

// SubmitResult is the outcome of a successful submit.
type SubmitResult struct {
	ProjectID   int64
	PromptID    int64
	LLMResponse string
}

// Submit saves the aggregate as submitted, then runs the LLM round trip
// and appends the prompt/generation history. The save commits before the
// LLM call: if generation fails the project stays submitted and the
// failure surfaces as an external-service error. Decided policy, not an
// accident.
func (s *ProjectService) Submit(ctx context.Context, payload map[string]interface{}, ownerID int64) (*SubmitResult, error) {
	fields, err := validation.Validate(payload, s.policy, s.now())
	if err != nil {
		return nil, err
	}

	projectID, err := s.store.SaveAggregate(ctx, fields.Detail(ownerID, domain.StatusSubmitted), ownerID, domain.StatusSubmitted)
	if err != nil {
		return nil, err
	}

	prompt := buildPlanPrompt(fields)
	response, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.log.Error("plan generation failed", "project_id", projectID, "error", err)
		return nil, &domain.ExternalServiceError{Service: "plan generation", Err: err}
	}

	promptID, err := s.store.AppendPrompt(ctx, projectID, prompt)
	if err != nil {
		return nil, err
	}
	if err := s.store.AppendGeneration(ctx, projectID, promptID, response); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, projectID, response)

	s.log.Info("project submitted", "project_id", projectID, "prompt_id", promptID)
	return &SubmitResult{ProjectID: projectID, PromptID: promptID, LLMResponse: response}, nil
}

// ListByOwner returns the caller's projects.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Project, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// GetDetail loads the aggregate and folds the join fan-out back into a
// deduplicated member list. The latest generation is attached only for
// submitted projects.
func (s *ProjectService) GetDetail(ctx context.Context, projectID, ownerID int64) (*domain.ProjectDetail, error) {
	rows, err := s.store.DetailRows(ctx, projectID, ownerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	detail := foldDetailRows(rows)

	if detail.Project.Status == domain.StatusSubmitted {
		if cached, ok := s.cache.Get(ctx, projectID); ok {
			detail.LLMResponse = &cached
		} else {
			latest, err := s.store.LatestGeneration(ctx, projectID)
			if err != nil {
				return nil, err
			}
			detail.LLMResponse = latest
			if latest != nil {
				s.cache.Set(ctx, projectID, *latest)
			}
		}
	}

	return detail, nil
}

// Delete removes the aggregate after an explicit ownership check, so a
// wrong owner gets a permission error rather than a silent not-found.
func (s *ProjectService) Delete(ctx context.Context, projectID, ownerID int64) error {
	owner, err := s.store.Owner(ctx, projectID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return domain.ErrForbidden
	}

	removed, err := s.store.Delete(ctx, projectID, ownerID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFound
	}

	s.cache.Invalidate(ctx, projectID)
	s.log.Info("project deleted", "project_id", projectID)
	return nil
}

// foldDetailRows collapses one-row-per-(member,skill) output into a single
// aggregate with at most one Language and one Framework skill per member.
func foldDetailRows(rows []repository.DetailRow) *domain.ProjectDetail {
	first := rows[0]
	detail := &domain.ProjectDetail{
		Project: domain.Project{
			ID:                     first.ProjectID,
			Name:                   first.Name,
			RequirementDescription: first.RequirementDescription.String,
			GoalDescription:        first.GoalDescription.String,
			Status:                 first.Status,
			OwnerID:                first.OwnerID,
		},
		Budget:      domain.Budget{ProjectID: first.ProjectID},
		Timeframe:   domain.Timeframe{ProjectID: first.ProjectID},
		TeamMembers: []domain.Member{},
	}
	if first.BudgetFloor.Valid {
		v := first.BudgetFloor.Float64
		detail.Budget.Floor = &v
	}
	if first.BudgetCeiling.Valid {
		v := first.BudgetCeiling.Float64
		detail.Budget.Ceiling = &v
	}
	if first.StartDate.Valid {
		detail.Timeframe.Start = domain.NewDate(first.StartDate.Time)
	}
	if first.EndDate.Valid {
		detail.Timeframe.End = domain.NewDate(first.EndDate.Time)
	}

	index := map[string]int{}
	for _, row := range rows {
		if !row.MemberName.Valid || row.MemberName.String == "" {
			continue
		}
		name := row.MemberName.String
		i, seen := index[name]
		if !seen {
			detail.TeamMembers = append(detail.TeamMembers, domain.MemberFromFullName(name, "", ""))
			i = len(detail.TeamMembers) - 1
			index[name] = i
		}
		if row.Skill.Valid && row.SkillCategory.Valid {
			switch row.SkillCategory.String {
			case "Language":
				detail.TeamMembers[i].Language = row.Skill.String
			case "Framework":
				detail.TeamMembers[i].Framework = row.Skill.String
			}
		}
	}
	return detail
}
