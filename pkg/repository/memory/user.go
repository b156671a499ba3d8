package memory

import (
	"context"
	"sort"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	m *Memory
}

func (r *userRepository) List(ctx context.Context, opts ...interfaces.ListUserOption) ([]*model.User, error) {
	defer r.m.read()()

	cfg := interfaces.BuildListUserConfig(opts...)
	users := make([]*model.User, 0, len(r.m.st.users))
	for _, u := range r.m.st.users {
		if cfg.Match(u) {
			users = append(users, copyUser(u))
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	defer r.m.read()()

	u, ok := r.m.st.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("id", id))
	}
	return copyUser(u), nil
}

func (r *userRepository) nameTaken(name string, except int64) bool {
	for _, u := range r.m.st.users {
		if u.Name == name && u.ID != except {
			return true
		}
	}
	return false
}

func (r *userRepository) Create(ctx context.Context, f model.UserFields) (*model.User, error) {
	defer r.m.write()()

	if r.nameTaken(f.Name, 0) {
		return nil, goerr.Wrap(model.ErrDuplicate, "user name already exists", goerr.V("name", f.Name))
	}

	u := &model.User{
		ID:        r.m.st.nextID("users"),
		Name:      f.Name,
		Team:      f.Team,
		IsActive:  f.IsActive,
		CreatedAt: r.m.st.now(),
	}
	r.m.st.users[u.ID] = u
	return copyUser(u), nil
}

func (r *userRepository) Update(ctx context.Context, id int64, f model.UserFields) (*model.User, error) {
	defer r.m.write()()

	u, ok := r.m.st.users[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("id", id))
	}
	if r.nameTaken(f.Name, id) {
		return nil, goerr.Wrap(model.ErrDuplicate, "user name already exists", goerr.V("name", f.Name))
	}

	u.Name = f.Name
	u.Team = f.Team
	u.IsActive = f.IsActive
	return copyUser(u), nil
}

// Delete keeps time logs that reference the user.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	defer r.m.write()()

	if _, ok := r.m.st.users[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, "user not found", goerr.V("id", id))
	}
	delete(r.m.st.users, id)
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	defer r.m.read()()
	return int64(len(r.m.st.users)), nil
}
