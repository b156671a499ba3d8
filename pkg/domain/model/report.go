package model

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// IncidentCounts feeds the incident dashboard header.
type IncidentCounts struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Unassigned int64 `json:"unassigned"`
}

// HoursBucket is one row of an hours aggregation.
type HoursBucket struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// TimeSummary aggregates every time log. Buckets are sorted by hours,
// largest first, then by label.
type TimeSummary struct {
	TotalHours   float64       `json:"total_hours"`
	Contributors int64         `json:"contributors"`
	ByProject    []HoursBucket `json:"by_project"`
	ByUser       []HoursBucket `json:"by_user"`
}

// HoursFor returns the hours of label in buckets.
func HoursFor(buckets []HoursBucket, label string) float64 {
	for _, b := range buckets {
		if b.Label == label {
			return b.Hours
		}
	}
	return 0
}

// ReportingFrequency is the cadence shown for every active project.
const ReportingFrequency = "Biweekly"

// ProjectOverviewRow is one active project in the portfolio overview.
type ProjectOverviewRow struct {
	ProjectID     int64          `json:"project_id"`
	ProjectName   string         `json:"project_name"`
	ProjectCode   string         `json:"project_code"`
	Lead          string         `json:"lead"`
	TeamCode      types.TeamCode `json:"team_code"`
	TeamName      string         `json:"team_name"`
	Health        types.Health   `json:"health"`
	HealthIcon    string         `json:"health_icon"`
	Frequency     string         `json:"frequency"`
	TargetEndDate *time.Time     `json:"target_end_date"`
}

// BriefingEntry is one active project in the executive briefing.
type BriefingEntry struct {
	Project    *Project      `json:"project"`
	Latest     *StatusReport `json:"latest_report"`
	Milestones []*Milestone  `json:"milestones"`
}

// UserTimeSummary backs the personal time view.
type UserTimeSummary struct {
	UserID     int64           `json:"user_id"`
	TotalHours float64         `json:"total_hours"`
	Recent     []*TimeLogEntry `json:"recent"`
}

// RowError describes one import row that was skipped. Row is 1-based and
// excludes the header.
type RowError struct {
	Row     int    `json:"row"`
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Processed int        `json:"processed"`
	Created   int        `json:"created"`
	Updated   int        `json:"updated"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors"`
}
