package model

import (
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// Milestone is a scheduled step of a project, grouped by phase.
type Milestone struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	MilestoneFields
}

type MilestoneFields struct {
	GroupName       string                `json:"group_name"`
	Name            string                `json:"milestone_name"`
	PercentComplete int                   `json:"percent_complete"`
	StartDate       *time.Time            `json:"start_date"`
	EndDate         *time.Time            `json:"end_date"`
	Comments        string                `json:"comments"`
	Status          types.MilestoneStatus `json:"status"`
}

func (f MilestoneFields) Normalize() MilestoneFields {
	f.GroupName = strings.TrimSpace(f.GroupName)
	f.Name = strings.TrimSpace(f.Name)
	if f.Status == "" {
		f.Status = types.MilestoneOnTrack
	}
	return f
}

func (f MilestoneFields) Validate() error {
	if f.Name == "" {
		return missing("milestone_name")
	}
	if f.PercentComplete < 0 || f.PercentComplete > 100 {
		return invalid("percent_complete", f.PercentComplete, nil)
	}
	if _, err := types.ParseMilestoneStatus(string(f.Status)); err != nil {
		return invalid("status", f.Status, err)
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return invalid("end_date", FormatDate(f.EndDate), nil)
	}
	return nil
}
