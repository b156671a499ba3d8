package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type reportRepository struct {
	r *Repository
}

func (r *reportRepository) IncidentCounts(ctx context.Context) (*model.IncidentCounts, error) {
	closed := []string{string(types.IncidentStatusResolved), string(types.IncidentStatusClosed)}

	var counts model.IncidentCounts
	err := r.r.conn(ctx).Model(&incidentRow{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN COALESCE(status, '') NOT IN ? THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN COALESCE(status, '') NOT IN ?
				AND COALESCE(assigned_bts_member, '') IN ('', ?) THEN 1 ELSE 0 END), 0) AS unassigned`,
			closed, closed, types.Unassigned).
		Scan(&counts).Error
	if err != nil {
		return nil, wrap(err, "failed to count incidents")
	}
	return &counts, nil
}

func (r *reportRepository) TimeSummary(ctx context.Context) (*model.TimeSummary, error) {
	db := r.r.conn(ctx)
	summary := &model.TimeSummary{}

	var total struct {
		TotalHours   float64
		Contributors int64
	}
	err := db.Table("time_logs AS t").
		Select("COALESCE(SUM(t.hours), 0) AS total_hours, COUNT(DISTINCT COALESCE(u.name, ?)) AS contributors",
			model.UnknownUserName).
		Joins("JOIN projects AS p ON p.id = t.project_id").
		Joins("LEFT JOIN users AS u ON u.id = t.user_id").
		Scan(&total).Error
	if err != nil {
		return nil, wrap(err, "failed to sum time logs")
	}
	summary.TotalHours = total.TotalHours
	summary.Contributors = total.Contributors

	err = db.Table("time_logs AS t").
		Select("p.project_name AS label, SUM(t.hours) AS hours").
		Joins("JOIN projects AS p ON p.id = t.project_id").
		Group("p.project_name").
		Order("hours DESC").Order("label ASC").
		Scan(&summary.ByProject).Error
	if err != nil {
		return nil, wrap(err, "failed to sum hours by project")
	}

	err = db.Table("time_logs AS t").
		Select("COALESCE(u.name, ?) AS label, SUM(t.hours) AS hours", model.UnknownUserName).
		Joins("JOIN projects AS p ON p.id = t.project_id").
		Joins("LEFT JOIN users AS u ON u.id = t.user_id").
		Group("label").
		Order("hours DESC").Order("label ASC").
		Scan(&summary.ByUser).Error
	if err != nil {
		return nil, wrap(err, "failed to sum hours by user")
	}

	if summary.ByProject == nil {
		summary.ByProject = []model.HoursBucket{}
	}
	if summary.ByUser == nil {
		summary.ByUser = []model.HoursBucket{}
	}
	return summary, nil
}

func (r *reportRepository) UserHours(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.r.conn(ctx).Model(&timeLogRow{}).
		Select("COALESCE(SUM(hours), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	if err != nil {
		return 0, wrap(err, "failed to sum user hours", goerr.V("user_id", userID))
	}
	return total, nil
}
