package sqlite

import (
	"context"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/datatypes"
)

type projectRepository struct {
	r *Repository
}

func (r *projectRepository) List(ctx context.Context, opts ...interfaces.ListProjectOption) ([]*model.Project, error) {
	cfg := interfaces.BuildListProjectConfig(opts...)

	q := r.r.conn(ctx).Model(&projectRow{})
	if status := cfg.Status(); status != nil {
		q = q.Where("status = ?", string(*status))
	}

	var rows []projectRow
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list projects")
	}

	projects := make([]*model.Project, len(rows))
	for i := range rows {
		projects[i] = rows[i].toModel()
	}
	return projects, nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	var row projectRow
	if err := r.r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, wrap(err, "project not found", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *projectRepository) GetByCode(ctx context.Context, code string) (*model.Project, error) {
	var rows []projectRow
	if err := r.r.conn(ctx).Where("project_code = ?", code).Limit(1).Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to get project by code", goerr.V("code", code))
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

// escapeLike makes prefix safe for a LIKE pattern with ESCAPE '\'.
func escapeLike(prefix string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
}

func (r *projectRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := r.r.conn(ctx).Model(&projectRow{}).
		Where(`project_code LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("project_code ASC").
		Pluck("project_code", &codes).Error
	if err != nil {
		return nil, wrap(err, "failed to list project codes", goerr.V("prefix", prefix))
	}

	// LIKE is case-insensitive for ASCII in SQLite; keep exact prefixes only.
	out := codes[:0]
	for _, c := range codes {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *projectRepository) Create(ctx context.Context, code string, f model.ProjectFields) (*model.Project, error) {
	members := f.AssignedMembers
	if members == nil {
		members = []string{}
	}
	row := &projectRow{
		ProjectName:      f.Name,
		ProjectCode:      code,
		Description:      f.Description,
		ProjectManager:   f.ProjectManager,
		BusinessOwner:    f.BusinessOwner,
		ExecutiveSponsor: f.ExecutiveSponsor,
		AssignedMembers:  datatypes.NewJSONSlice(members),
		Status:           string(f.Status),
		StartDate:        f.StartDate,
		TargetEndDate:    f.TargetEndDate,
		ActualEndDate:    f.ActualEndDate,
		BudgetHours:      f.BudgetHours,
		Priority:         string(f.Priority),
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create project", goerr.V("code", code))
	}
	return row.toModel(), nil
}

func (r *projectRepository) Update(ctx context.Context, id int64, f model.ProjectFields) (*model.Project, error) {
	res := r.r.conn(ctx).Model(&projectRow{}).Where("id = ?", id).Updates(projectColumns(f))
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to update project", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	return r.Get(ctx, id)
}

// Delete relies on ON DELETE CASCADE to remove children.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	res := r.r.conn(ctx).Delete(&projectRow{}, id)
	if res.Error != nil {
		return wrapDelete(res.Error, "failed to delete project", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	return nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.r.conn(ctx).Model(&projectRow{}).Count(&n).Error; err != nil {
		return 0, wrap(err, "failed to count projects")
	}
	return n, nil
}
