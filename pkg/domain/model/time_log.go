package model

import (
	"strings"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// Bounds of a single time entry, in hours.
const (
	MinLoggedHours = 0.25
	MaxLoggedHours = 24
)

// TimeLog records hours spent by a user on a project. UserID is not a
// foreign key: removing a user keeps their logged time.
type TimeLog struct {
	ID int64 `json:"id"`
	TimeLogFields
	CreatedAt time.Time `json:"created_at"`
}

type TimeLogFields struct {
	ProjectID   int64              `json:"project_id"`
	UserID      int64              `json:"user_id"`
	Date        time.Time          `json:"date"`
	Hours       float64            `json:"hours"`
	Description string             `json:"description"`
	Category    types.TimeCategory `json:"category"`
}

func (f TimeLogFields) Normalize() TimeLogFields {
	f.Description = strings.TrimSpace(f.Description)
	if f.Category == "" {
		f.Category = types.TimeOther
	}
	if !f.Date.IsZero() {
		f.Date = Date(f.Date)
	}
	return f
}

func (f TimeLogFields) Validate() error {
	if f.ProjectID == 0 {
		return missing("project_id")
	}
	if f.UserID == 0 {
		return missing("user_id")
	}
	if f.Date.IsZero() {
		return missing("date")
	}
	if f.Hours < MinLoggedHours || f.Hours > MaxLoggedHours {
		return invalid("hours", f.Hours, nil)
	}
	if f.Description == "" {
		return missing("description")
	}
	if _, err := types.ParseTimeCategory(string(f.Category)); err != nil {
		return invalid("category", f.Category, err)
	}
	return nil
}

// TimeLogEntry is a time log joined with its user and project. UserName is
// "Unknown" when the user no longer exists.
type TimeLogEntry struct {
	TimeLog
	UserName    string  `json:"user_name"`
	ProjectName string  `json:"project_name"`
	ProjectCode string  `json:"project_code"`
	BudgetHours float64 `json:"budget_hours"`
}

// UnknownUserName labels time logged by a user that has since been deleted.
const UnknownUserName = "Unknown"
