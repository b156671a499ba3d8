package model

import (
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// StatusReport is an append-only formal report on a project's health.
type StatusReport struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"project_id"`
	StatusReportFields
	CreatedAt time.Time `json:"created_at"`
}

type StatusReportFields struct {
	ReportDate       time.Time    `json:"report_date"`
	NextReportDate   *time.Time   `json:"next_report_date"`
	HealthScope      types.Health `json:"health_scope"`
	HealthSchedule   types.Health `json:"health_schedule"`
	HealthBudget     types.Health `json:"health_budget"`
	HealthResources  types.Health `json:"health_resources"`
	HealthQuality    types.Health `json:"health_quality"`
	HealthOverall    types.Health `json:"health_overall"`
	ExecutiveSummary string       `json:"executive_summary"`
	Accomplishments  string       `json:"accomplishments"`
	NextSteps        string       `json:"next_steps"`
}

func (f *StatusReportFields) healths() []*types.Health {
	return []*types.Health{
		&f.HealthScope,
		&f.HealthSchedule,
		&f.HealthBudget,
		&f.HealthResources,
		&f.HealthQuality,
		&f.HealthOverall,
	}
}

// Normalize defaults every blank rating to Not Started.
func (f StatusReportFields) Normalize() StatusReportFields {
	for _, h := range f.healths() {
		*h = h.Normalize()
	}
	if !f.ReportDate.IsZero() {
		f.ReportDate = Date(f.ReportDate)
	}
	return f
}

func (f StatusReportFields) Validate() error {
	if f.ReportDate.IsZero() {
		return missing("report_date")
	}
	for _, h := range f.healths() {
		if !h.IsValid() {
			return invalid("health", *h, nil)
		}
	}
	return nil
}

// OverallHealth returns the overall rating of r, Not Started for nil.
func (r *StatusReport) OverallHealth() types.Health {
	if r == nil {
		return types.HealthNotStarted
	}
	return r.HealthOverall.Normalize()
}
