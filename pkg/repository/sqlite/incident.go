package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type incidentRepository struct {
	r *Repository
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	var rows []incidentRow
	if err := r.r.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list incidents")
	}

	incidents := make([]*model.Incident, len(rows))
	for i := range rows {
		incidents[i] = rows[i].toModel()
	}
	return incidents, nil
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	var row incidentRow
	if err := r.r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, wrap(err, "incident not found", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *incidentRepository) Create(ctx context.Context, f model.IncidentFields) (*model.Incident, error) {
	row := newIncidentRow(f)
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create incident", goerr.V("inc_number", f.IncNumber))
	}
	return row.toModel(), nil
}

func (r *incidentRepository) Update(ctx context.Context, id int64, f model.IncidentFields) (*model.Incident, error) {
	res := r.r.conn(ctx).Model(&incidentRow{}).Where("id = ?", id).Updates(incidentColumns(f))
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to update incident", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "incident not found", goerr.V("id", id))
	}
	return r.Get(ctx, id)
}

func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	res := r.r.conn(ctx).Delete(&incidentRow{}, id)
	if res.Error != nil {
		return wrapDelete(res.Error, "failed to delete incident", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return goerr.Wrap(model.ErrNotFound, "incident not found", goerr.V("id", id))
	}
	return nil
}

func (r *incidentRepository) UpdateMany(ctx context.Context, ids []int64, u model.IncidentBulkUpdate) (int64, error) {
	cols := bulkColumns(u)
	if len(ids) == 0 || len(cols) == 0 {
		return 0, nil
	}
	res := r.r.conn(ctx).Model(&incidentRow{}).Where("id IN ?", ids).Updates(cols)
	if res.Error != nil {
		return 0, wrap(res.Error, "failed to bulk update incidents", goerr.V("count", len(ids)))
	}
	return res.RowsAffected, nil
}

func (r *incidentRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.r.conn(ctx).Where("id IN ?", ids).Delete(&incidentRow{})
	if res.Error != nil {
		return 0, wrapDelete(res.Error, "failed to bulk delete incidents", goerr.V("count", len(ids)))
	}
	return res.RowsAffected, nil
}
