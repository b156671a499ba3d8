package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Project is an initiative tracked with milestones, status reports and time.
// Code is immutable once created.
type Project struct {
	ID               int64               `json:"id"`
	Name             string              `json:"project_name"`
	Code             string              `json:"project_code"`
	Description      string              `json:"description"`
	ProjectManager   string              `json:"project_manager"`
	BusinessOwner    string              `json:"business_owner"`
	ExecutiveSponsor string              `json:"executive_sponsor"`
	AssignedMembers  []string            `json:"assigned_members"`
	Status           types.ProjectStatus `json:"status"`
	StartDate        *time.Time          `json:"start_date"`
	TargetEndDate    *time.Time          `json:"target_end_date"`
	ActualEndDate    *time.Time          `json:"actual_end_date"`
	BudgetHours      float64             `json:"budget_hours"`
	Priority         types.Priority      `json:"priority"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Fields returns the editable columns of p.
func (p *Project) Fields() ProjectFields {
	members := make([]string, len(p.AssignedMembers))
	copy(members, p.AssignedMembers)
	return ProjectFields{
		Name:             p.Name,
		Description:      p.Description,
		ProjectManager:   p.ProjectManager,
		BusinessOwner:    p.BusinessOwner,
		ExecutiveSponsor: p.ExecutiveSponsor,
		AssignedMembers:  members,
		Status:           p.Status,
		StartDate:        p.StartDate,
		TargetEndDate:    p.TargetEndDate,
		ActualEndDate:    p.ActualEndDate,
		BudgetHours:      p.BudgetHours,
		Priority:         p.Priority,
	}
}

// ProjectFields is the update allow-list for projects. The code is set once
// at creation and is deliberately absent here.
type ProjectFields struct {
	Name             string              `json:"project_name"`
	Description      string              `json:"description"`
	ProjectManager   string              `json:"project_manager"`
	BusinessOwner    string              `json:"business_owner"`
	ExecutiveSponsor string              `json:"executive_sponsor"`
	AssignedMembers  []string            `json:"assigned_members"`
	Status           types.ProjectStatus `json:"status"`
	StartDate        *time.Time          `json:"start_date"`
	TargetEndDate    *time.Time          `json:"target_end_date"`
	ActualEndDate    *time.Time          `json:"actual_end_date"`
	BudgetHours      float64             `json:"budget_hours"`
	Priority         types.Priority      `json:"priority"`
}

// Normalize fills defaults and trims text.
func (f ProjectFields) Normalize() ProjectFields {
	f.Name = strings.TrimSpace(f.Name)
	f.ProjectManager = strings.TrimSpace(f.ProjectManager)
	f.Status = f.Status.Normalize()
	if f.Priority == "" {
		f.Priority = types.PriorityMedium
	}
	if f.AssignedMembers == nil {
		f.AssignedMembers = []string{}
	}
	return f
}

// Validate checks required and enumerated fields.
func (f ProjectFields) Validate() error {
	if f.Name == "" {
		return missing("project_name")
	}
	if !f.Status.IsValid() {
		return invalid("status", f.Status, nil)
	}
	if f.Priority != "" && !f.Priority.IsValid() {
		return invalid("priority", f.Priority, nil)
	}
	if f.BudgetHours < 0 {
		return invalid("budget_hours", f.BudgetHours, nil)
	}
	return nil
}

// ValidateProjectCode checks that a code is present. Its shape is not
// enforced so imported legacy codes are accepted.
func ValidateProjectCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return missing("project_code")
	}
	return nil
}

// ProjectCodePrefix builds "TEAM-YY-TT" for the given year.
func ProjectCodePrefix(team types.TeamCode, projectType types.ProjectTypeCode, year int) (string, error) {
	if err := team.Validate(); err != nil {
		return "", goerr.Wrap(ErrInvalidValue, err.Error(), goerr.V(FieldKey, "team"))
	}
	if err := projectType.Validate(); err != nil {
		return "", goerr.Wrap(ErrInvalidValue, err.Error(), goerr.V(FieldKey, "project_type"))
	}
	if year < 0 {
		return "", invalid("year", year, nil)
	}
	return fmt.Sprintf("%s-%02d-%s", team, year%100, projectType), nil
}

// NextProjectCode picks the next code under prefix given the codes already in
// use. The last two characters of each candidate are read as its sequence
// number; codes that are too short or not numeric there are ignored.
func NextProjectCode(prefix string, existing []string) string {
	maxSeq := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) || len(code) < len(prefix)+2 {
			continue
		}
		seq, err := strconv.Atoi(code[len(code)-2:])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("%s%02d", prefix, maxSeq+1)
}
