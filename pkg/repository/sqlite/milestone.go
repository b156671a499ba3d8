package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

type milestoneRepository struct {
	r *Repository
}

// byStartDate orders milestones by start date with undated ones last.
func byStartDate(q *gorm.DB) *gorm.DB {
	return q.Order("start_date IS NULL").Order("start_date ASC").Order("id ASC")
}

func (r *milestoneRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.Milestone, error) {
	var rows []milestoneRow
	q := r.r.conn(ctx).Where("project_id = ?", projectID)
	if err := byStartDate(q).Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list milestones", goerr.V("project_id", projectID))
	}
	return milestonesToModel(rows), nil
}

func (r *milestoneRepository) List(ctx context.Context) ([]*model.Milestone, error) {
	var rows []milestoneRow
	q := r.r.conn(ctx).Order("project_id ASC")
	if err := byStartDate(q).Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list milestones")
	}
	return milestonesToModel(rows), nil
}

func milestonesToModel(rows []milestoneRow) []*model.Milestone {
	out := make([]*model.Milestone, len(rows))
	for i := range rows {
		out[i] = rows[i].toModel()
	}
	return out
}

func (r *milestoneRepository) Get(ctx context.Context, id int64) (*model.Milestone, error) {
	var row milestoneRow
	if err := r.r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, wrap(err, "milestone not found", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *milestoneRepository) Create(ctx context.Context, projectID int64, f model.MilestoneFields) (*model.Milestone, error) {
	row := &milestoneRow{
		ProjectID:       projectID,
		GroupName:       f.GroupName,
		MilestoneName:   f.Name,
		PercentComplete: f.PercentComplete,
		StartDate:       f.StartDate,
		EndDate:         f.EndDate,
		Comments:        f.Comments,
		Status:          string(f.Status),
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create milestone", goerr.V("project_id", projectID))
	}
	return row.toModel(), nil
}

func (r *milestoneRepository) Update(ctx context.Context, id int64, f model.MilestoneFields) (*model.Milestone, error) {
	res := r.r.conn(ctx).Model(&milestoneRow{}).Where("id = ?", id).Updates(milestoneColumns(f))
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to update milestone", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "milestone not found", goerr.V("id", id))
	}
	return r.Get(ctx, id)
}

func (r *milestoneRepository) Delete(ctx context.Context, id int64) error {
	res := r.r.conn(ctx).Delete(&milestoneRow{}, id)
	if res.Error != nil {
		return wrapDelete(res.Error, "failed to delete milestone", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return goerr.Wrap(model.ErrNotFound, "milestone not found", goerr.V("id", id))
	}
	return nil
}

func (r *milestoneRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var n int64
	if err := r.r.conn(ctx).Model(&milestoneRow{}).Where("project_id = ?", projectID).Count(&n).Error; err != nil {
		return 0, wrap(err, "failed to count milestones", goerr.V("project_id", projectID))
	}
	return n, nil
}
