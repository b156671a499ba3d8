package sqlite

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	r *Repository
}

func (r *userRepository) List(ctx context.Context, opts ...interfaces.ListUserOption) ([]*model.User, error) {
	cfg := interfaces.BuildListUserConfig(opts...)

	q := r.r.conn(ctx).Model(&userRow{})
	if cfg.ActiveOnly() {
		q = q.Where("is_active = ?", true)
	}
	if team := cfg.Team(); team != "" {
		q = q.Where("team = ?", team)
	}

	var rows []userRow
	if err := q.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, wrap(err, "failed to list users")
	}

	users := make([]*model.User, len(rows))
	for i := range rows {
		users[i] = rows[i].toModel()
	}
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	var row userRow
	if err := r.r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, wrap(err, "user not found", goerr.V("id", id))
	}
	return row.toModel(), nil
}

func (r *userRepository) Create(ctx context.Context, f model.UserFields) (*model.User, error) {
	row := &userRow{
		Name:     f.Name,
		Team:     string(f.Team),
		IsActive: f.IsActive,
	}
	if err := r.r.conn(ctx).Create(row).Error; err != nil {
		return nil, wrap(err, "failed to create user", goerr.V("name", f.Name))
	}
	return row.toModel(), nil
}

func (r *userRepository) Update(ctx context.Context, id int64, f model.UserFields) (*model.User, error) {
	res := r.r.conn(ctx).Model(&userRow{}).Where("id = ?", id).Updates(userColumns(f))
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to update user", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("id", id))
	}
	return r.Get(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res := r.r.conn(ctx).Delete(&userRow{}, id)
	if res.Error != nil {
		return wrapDelete(res.Error, "failed to delete user", goerr.V("id", id))
	}
	if res.RowsAffected == 0 {
		return goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("id", id))
	}
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.r.conn(ctx).Model(&userRow{}).Count(&n).Error; err != nil {
		return 0, wrap(err, "failed to count users")
	}
	return n, nil
}
