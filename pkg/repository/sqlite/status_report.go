package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type statusReportRepository struct {
	r *Repository
}

func (r *statusReportRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.StatusReport, error) {
	var rows []statusReportRow
	err := r.r.conn(ctx).
		Where("project_id = ?", projectID).
		Order("report_date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "failed to list status reports", goerr.V("project_id", projectID))
	}
	return reportsToModel(rows), nil
}

func (r *statusReportRepository) Latest(ctx context.Context, projectID int64) (*model.StatusReport, error) {
	var rows []statusReportRow
	err := r.r.conn(ctx).
		Where("project_id = ?", projectID).
		Order("report_date DESC").Order("id DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "failed to get latest status report", goerr.V("project_id", projectID))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

func (r *statusReportRepository) List(ctx context.Context) ([]*model.StatusReport, error) {
	var rows []statusReportRow
	err := r.r.conn(ctx).
		Order("project_id ASC").Order("report_date DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, wrap(err, "failed to list status reports")
	}
	return reportsToModel(rows), nil
}

func reportsToModel(rows []statusReportRow) []*model.StatusReport {
	out := make([]*model.StatusReport, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out
}

func (r *statusReportRepository) Create(ctx context.Context, projectID int64, f model.StatusReportFields) (*model.StatusReport, error) {
	row := &statusReportRow{
		ProjectID:        projectID,
		ReportDate:       f.ReportDate,
		NextReportDate:   f.NextReportDate,
		HealthScope:      string(f.HealthScope),
		HealthSchedule:   string(f.HealthSchedule),
		HealthBudget:     string(f.HealthBudget),
		HealthResources:  string(f.HealthResources),
		HealthQuality:    string(f.HealthQuality),
		HealthOverall:    string(f.HealthOverall),
		ExecutiveSummary: f.ExecutiveSummary,
		Accomplishments:  f.Accomplishments,
		NextSteps:        f.NextSteps,
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create status report", goerr.V("project_id", projectID))
	}
	return row.toModel(), nil
}
