package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/utils/querycache"
	"github.com/m-mizutani/goerr/v2"
)

type UserUseCase struct {
	repo  interfaces.Repository
	cache *querycache.Cache
}

func NewUserUseCase(repo interfaces.Repository, cache *querycache.Cache) *UserUseCase {
	return &UserUseCase{
		repo:  repo,
		cache: cache,
	}
}

// UserFilter narrows List. The zero value lists everyone.
type UserFilter struct {
	ActiveOnly bool   `json:"active_only"`
	Team       string `json:"team"`
}

func (f UserFilter) key() string {
	return strconv.FormatBool(f.ActiveOnly) + "/" + f.Team
}

func (f UserFilter) options() []interfaces.ListUserOption {
	var opts []interfaces.ListUserOption
	if f.ActiveOnly {
		opts = append(opts, interfaces.WithActiveOnly())
	}
	if f.Team != "" {
		opts = append(opts, interfaces.WithTeam(f.Team))
	}
	return opts
}

// List returns users ordered by name, served from the read cache.
func (uc *UserUseCase) List(ctx context.Context, filter UserFilter) ([]*model.User, error) {
	users, err := querycache.Get(ctx, uc.cache, usersNamespace, filter.key(), func(ctx context.Context) ([]*model.User, error) {
		return uc.repo.User().List(ctx, filter.options()...)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (uc *UserUseCase) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, userErr(err, id)
	}
	return u, nil
}

// NameOf returns the name of user id, or "" when it does not exist.
func (uc *UserUseCase) NameOf(ctx context.Context, id int64) string {
	u, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return ""
	}
	return u.Name
}

func (uc *UserUseCase) Create(ctx context.Context, f model.UserFields) (*model.User, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user")
	}

	u, err := uc.repo.User().Create(ctx, f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("name", f.Name))
	}
	uc.cache.Invalidate(usersNamespace)
	return u, nil
}

// Update replaces the user's name, team and active flag. Incidents and
// projects keep whatever names they recorded earlier.
func (uc *UserUseCase) Update(ctx context.Context, id int64, f model.UserFields) (*model.User, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid user", goerr.V(UserIDKey, id))
	}

	u, err := uc.repo.User().Update(ctx, id, f)
	if err != nil {
		return nil, userErr(err, id)
	}
	uc.cache.Invalidate(usersNamespace)
	return u, nil
}

// Delete removes the user. Time already logged by them is kept.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.User().Delete(ctx, id); err != nil {
		return userErr(err, id)
	}
	uc.cache.Invalidate(usersNamespace)
	return nil
}

func userErr(err error, id int64) error {
	if errors.Is(err, model.ErrNotFound) {
		return goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
	}
	return goerr.Wrap(err, "user operation failed", goerr.V(UserIDKey, id))
}
