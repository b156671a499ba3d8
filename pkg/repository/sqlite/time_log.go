package sqlite

import (
	"context"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type timeLogRepository struct {
	r *Repository
}

func (r *timeLogRepository) Create(ctx context.Context, f model.TimeLogFields) (*model.TimeLog, error) {
	row := &timeLogRow{
		ProjectID:   f.ProjectID,
		UserID:      f.UserID,
		Date:        f.Date,
		Hours:       f.Hours,
		Description: f.Description,
		Category:    string(f.Category),
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create time log",
			goerr.V("project_id", f.ProjectID), goerr.V("user_id", f.UserID))
	}
	return row.toModel(), nil
}

// timeLogEntryRow is the result shape of the joined listing.
type timeLogEntryRow struct {
	ID          int64
	ProjectID   int64
	UserID      int64
	Date        time.Time
	Hours       float64
	Description string
	Category    string
	CreatedAt   time.Time
	UserName    string
	ProjectName string
	ProjectCode string
	BudgetHours float64
}

func (r *timeLogRepository) List(ctx context.Context, opts ...interfaces.ListTimeLogOption) ([]*model.TimeLogEntry, error) {
	cfg := interfaces.BuildListTimeLogConfig(opts...)

	q := r.r.conn(ctx).
		Table("time_logs AS t").
		Select(`t.id, t.project_id, t.user_id, t.date, t.hours, t.description, t.category, t.created_at,
			COALESCE(u.name, ?) AS user_name,
			p.project_name AS project_name, p.project_code AS project_code, p.budget_hours AS budget_hours`,
			model.UnknownUserName).
		Joins("JOIN projects AS p ON p.id = t.project_id").
		Joins("LEFT JOIN users AS u ON u.id = t.user_id")
	if id := cfg.ProjectID(); id != nil {
		q = q.Where("t.project_id = ?", *id)
	}
	if id := cfg.UserID(); id != nil {
		q = q.Where("t.user_id = ?", *id)
	}
	q = q.Order("t.date DESC").Order("t.id DESC")
	if limit := cfg.Limit(); limit > 0 {
		q = q.Limit(limit)
	}

	var rows []timeLogEntryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list time logs")
	}

	out := make([]*model.TimeLogEntry, len(rows))
	for i, row := range rows {
		out[i] = &model.TimeLogEntry{
			TimeLog: model.TimeLog{
				ID: row.ID,
				TimeLogFields: model.TimeLogFields{
					ProjectID:   row.ProjectID,
					UserID:      row.UserID,
					Date:        row.Date,
					Hours:       row.Hours,
					Description: row.Description,
					Category:    types.TimeCategory(row.Category),
				},
				CreatedAt: row.CreatedAt,
			},
			UserName:    row.UserName,
			ProjectName: row.ProjectName,
			ProjectCode: row.ProjectCode,
			BudgetHours: row.BudgetHours,
		}
	}
	return out, nil
}
