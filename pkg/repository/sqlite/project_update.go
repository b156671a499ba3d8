package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

type projectUpdateRepository struct {
	r *Repository
}

func (r *projectUpdateRepository) Create(ctx context.Context, projectID int64, f model.ProjectUpdateFields) (*model.ProjectUpdate, error) {
	row := &projectUpdateRow{
		ProjectID:  projectID,
		UpdateType: string(f.Type),
		UserName:   f.UserName,
		UpdateText: f.Text,
		OldValue:   f.OldValue,
		NewValue:   f.NewValue,
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to record project update", goerr.V("project_id", projectID))
	}
	return row.toModel(), nil
}

func (r *projectUpdateRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectUpdate, error) {
	return r.list(r.r.conn(ctx).Where("project_id = ?", projectID))
}

func (r *projectUpdateRepository) List(ctx context.Context) ([]*model.ProjectUpdate, error) {
	return r.list(r.r.conn(ctx))
}

func (r *projectUpdateRepository) list(q *gorm.DB) ([]*model.ProjectUpdate, error) {
	var rows []projectUpdateRow
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list project updates")
	}
	out := make([]*model.ProjectUpdate, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out, nil
}
