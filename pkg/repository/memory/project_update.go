package memory

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type projectUpdateRepository struct {
	m *Memory
}

func (r *projectUpdateRepository) Create(ctx context.Context, projectID int64, f model.ProjectUpdateFields) (*model.ProjectUpdate, error) {
	defer r.m.write()()

	if _, ok := r.m.st.projects[projectID]; !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("project_id", projectID))
	}

	u := &model.ProjectUpdate{
		ID:                  r.m.st.nextID("project_updates"),
		ProjectID:           projectID,
		ProjectUpdateFields: f,
		CreatedAt:           r.m.st.now(),
	}
	r.m.st.updates[u.ID] = u
	return copyProjectUpdate(u), nil
}

func (r *projectUpdateRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectUpdate, error) {
	return r.list(func(u *model.ProjectUpdate) bool { return u.ProjectID == projectID })
}

func (r *projectUpdateRepository) List(ctx context.Context) ([]*model.ProjectUpdate, error) {
	return r.list(func(*model.ProjectUpdate) bool { return true })
}

func (r *projectUpdateRepository) list(match func(*model.ProjectUpdate) bool) ([]*model.ProjectUpdate, error) {
	defer r.m.read()()

	var out []*model.ProjectUpdate
	for _, u := range r.m.st.updates {
		if match(u) {
			out = append(out, copyProjectUpdate(u))
		}
	}
	sortNewestFirst(out,
		func(u *model.ProjectUpdate) int64 { return u.CreatedAt.UnixNano() },
		func(u *model.ProjectUpdate) int64 { return u.ID },
	)
	return out, nil
}
