package memory

import (
	"context"
	"sort"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type milestoneRepository struct {
	m *Memory
}

// lessMilestone orders by start date with undated milestones last.
func lessMilestone(a, b *model.Milestone) bool {
	switch {
	case a.StartDate == nil && b.StartDate != nil:
		return false
	case a.StartDate != nil && b.StartDate == nil:
		return true
	case a.StartDate != nil && b.StartDate != nil && !a.StartDate.Equal(*b.StartDate):
		return a.StartDate.Before(*b.StartDate)
	}
	return a.ID < b.ID
}

func (r *milestoneRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.Milestone, error) {
	defer r.m.read()()

	var out []*model.Milestone
	for _, ms := range r.m.st.milestones {
		if ms.ProjectID == projectID {
			out = append(out, copyMilestone(ms))
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessMilestone(out[i], out[j]) })
	return out, nil
}

func (r *milestoneRepository) List(ctx context.Context) ([]*model.Milestone, error) {
	defer r.m.read()()

	out := make([]*model.Milestone, 0, len(r.m.st.milestones))
	for _, ms := range r.m.st.milestones {
		out = append(out, copyMilestone(ms))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectID != out[j].ProjectID {
			return out[i].ProjectID < out[j].ProjectID
		}
		return lessMilestone(out[i], out[j])
	})
	return out, nil
}

func (r *milestoneRepository) Get(ctx context.Context, id int64) (*model.Milestone, error) {
	defer r.m.read()()

	ms, ok := r.m.st.milestones[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "milestone not found", goerr.V("id", id))
	}
	return copyMilestone(ms), nil
}

func (r *milestoneRepository) Create(ctx context.Context, projectID int64, f model.MilestoneFields) (*model.Milestone, error) {
	defer r.m.write()()

	if _, ok := r.m.st.projects[projectID]; !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("project_id", projectID))
	}

	ms := &model.Milestone{
		ID:              r.m.st.nextID("project_milestones"),
		ProjectID:       projectID,
		MilestoneFields: f,
	}
	ms = copyMilestone(ms)
	r.m.st.milestones[ms.ID] = ms
	return copyMilestone(ms), nil
}

func (r *milestoneRepository) Update(ctx context.Context, id int64, f model.MilestoneFields) (*model.Milestone, error) {
	defer r.m.write()()

	ms, ok := r.m.st.milestones[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "milestone not found", goerr.V("id", id))
	}
	ms.MilestoneFields = f
	updated := copyMilestone(ms)
	r.m.st.milestones[id] = updated
	return copyMilestone(updated), nil
}

func (r *milestoneRepository) Delete(ctx context.Context, id int64) error {
	defer r.m.write()()

	if _, ok := r.m.st.milestones[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, "milestone not found", goerr.V("id", id))
	}
	delete(r.m.st.milestones, id)
	return nil
}

func (r *milestoneRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	defer r.m.read()()

	var n int64
	for _, ms := range r.m.st.milestones {
		if ms.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}
