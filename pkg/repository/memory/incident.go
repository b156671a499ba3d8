package memory

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type incidentRepository struct {
	m *Memory
}

func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	defer r.m.read()()

	incidents := make([]*model.Incident, 0, len(r.m.st.incidents))
	for _, i := range r.m.st.incidents {
		incidents = append(incidents, copyIncident(i))
	}
	sortNewestFirst(incidents,
		func(i *model.Incident) int64 { return i.CreatedAt.UnixNano() },
		func(i *model.Incident) int64 { return i.ID },
	)
	return incidents, nil
}

func (r *incidentRepository) Get(ctx context.Context, id int64) (*model.Incident, error) {
	defer r.m.read()()

	i, ok := r.m.st.incidents[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "incident not found", goerr.V("id", id))
	}
	return copyIncident(i), nil
}

func (r *incidentRepository) Create(ctx context.Context, f model.IncidentFields) (*model.Incident, error) {
	defer r.m.write()()

	i := &model.Incident{
		ID:             r.m.st.nextID("incidents"),
		IncidentFields: copyIncidentFields(f),
		CreatedAt:      r.m.st.now(),
	}
	r.m.st.incidents[i.ID] = i
	return copyIncident(i), nil
}

func (r *incidentRepository) Update(ctx context.Context, id int64, f model.IncidentFields) (*model.Incident, error) {
	defer r.m.write()()

	i, ok := r.m.st.incidents[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "incident not found", goerr.V("id", id))
	}
	i.IncidentFields = copyIncidentFields(f)
	return copyIncident(i), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id int64) error {
	defer r.m.write()()

	if _, ok := r.m.st.incidents[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, "incident not found", goerr.V("id", id))
	}
	delete(r.m.st.incidents, id)
	return nil
}

func (r *incidentRepository) UpdateMany(ctx context.Context, ids []int64, u model.IncidentBulkUpdate) (int64, error) {
	defer r.m.write()()

	if u.IsEmpty() {
		return 0, nil
	}
	var n int64
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if i, ok := r.m.st.incidents[id]; ok {
			u.Apply(&i.IncidentFields)
			n++
		}
	}
	return n, nil
}

func (r *incidentRepository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	defer r.m.write()()

	var n int64
	for _, id := range ids {
		if _, ok := r.m.st.incidents[id]; ok {
			delete(r.m.st.incidents, id)
			n++
		}
	}
	return n, nil
}
