package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Project status values. Progression is append-only: a submitted project
// never goes back to draft.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Project is the aggregate root. OwnerID is immutable once set; every
// operation verifies the acting user's id against it.
type Project struct {
	ID                     int64  `json:"id"`
	Name                   string `json:"name"`
	RequirementDescription string `json:"requirement_description"`
	GoalDescription        string `json:"goal_description"`
	Status                 string `json:"status"`
	OwnerID                int64  `json:"owner_id"`
}

// Budget is a 1:1 child of Project. Both bounds optional; a budget with
// neither bound is never persisted.
type Budget struct {
	ProjectID int64    `json:"project_id"`
	Floor     *float64 `json:"budget_floor"`
	Ceiling   *float64 `json:"budget_ceiling"`
}

func (b Budget) Empty() bool {
	return b.Floor == nil && b.Ceiling == nil
}

// Timeframe is a 1:1 child of Project, same skip-if-empty rule as Budget.
type Timeframe struct {
	ProjectID int64 `json:"project_id"`
	Start     *Date `json:"start_date"`
	End       *Date `json:"end_date"`
}

func (t Timeframe) Empty() bool {
	return t.Start == nil && t.End == nil
}

// Member is identified by its (first name, last name) pair. Two people
// sharing a full name collide into one record; that is the external
// contract inherited from the schema.
type Member struct {
	FirstName string
	LastName  string
	Language  string
	Framework string
}

// MemberFromFullName splits "first last" on the first space; everything
// after it becomes the last name.
func MemberFromFullName(fullName, language, framework string) Member {
	first, last, _ := strings.Cut(strings.TrimSpace(fullName), " ")
	return Member{
		FirstName: first,
		LastName:  strings.TrimSpace(last),
		Language:  language,
		Framework: framework,
	}
}

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// memberJSON is the wire shape: the name travels as one "member" field.
type memberJSON struct {
	Member    string `json:"member"`
	Language  string `json:"language,omitempty"`
	Framework string `json:"framework,omitempty"`
}

func (m Member) MarshalJSON() ([]byte, error) {
	return json.Marshal(memberJSON{
		Member:    m.FullName(),
		Language:  m.Language,
		Framework: m.Framework,
	})
}

func (m *Member) UnmarshalJSON(data []byte) error {
	var raw memberJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = MemberFromFullName(raw.Member, raw.Language, raw.Framework)
	return nil
}

// ProjectDetail is the merged view of a project and its children, the unit
// the repository saves and loads as one transaction.
type ProjectDetail struct {
	Project     Project
	Budget      Budget
	Timeframe   Timeframe
	TeamMembers []Member
	LLMResponse *string
}

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) *Date {
	return &Date{Time: t}
}

func ParseDate(s string) (*Date, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &Date{Time: t}, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", s)
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = parsed.Time
	return nil
}
