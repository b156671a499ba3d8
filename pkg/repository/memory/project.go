package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type projectRepository struct {
	m *Memory
}

func sortNewestFirst[T any](items []T, created func(T) int64, id func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if ci != cj {
			return ci > cj
		}
		return id(items[i]) > id(items[j])
	})
}

func (r *projectRepository) List(ctx context.Context, opts ...interfaces.ListProjectOption) ([]*model.Project, error) {
	defer r.m.read()()

	cfg := interfaces.BuildListProjectConfig(opts...)
	projects := make([]*model.Project, 0, len(r.m.st.projects))
	for _, p := range r.m.st.projects {
		if status := cfg.Status(); status != nil && p.Status != *status {
			continue
		}
		projects = append(projects, copyProject(p))
	}
	sortNewestFirst(projects,
		func(p *model.Project) int64 { return p.CreatedAt.UnixNano() },
		func(p *model.Project) int64 { return p.ID },
	)
	return projects, nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	defer r.m.read()()

	p, ok := r.m.st.projects[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	return copyProject(p), nil
}

func (r *projectRepository) GetByCode(ctx context.Context, code string) (*model.Project, error) {
	defer r.m.read()()

	for _, p := range r.m.st.projects {
		if p.Code == code {
			return copyProject(p), nil
		}
	}
	return nil, nil
}

func (r *projectRepository) ListCodes(ctx context.Context, prefix string) ([]string, error) {
	defer r.m.read()()

	var codes []string
	for _, p := range r.m.st.projects {
		if strings.HasPrefix(p.Code, prefix) {
			codes = append(codes, p.Code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func applyProjectFields(p *model.Project, f model.ProjectFields) {
	p.Name = f.Name
	p.Description = f.Description
	p.ProjectManager = f.ProjectManager
	p.BusinessOwner = f.BusinessOwner
	p.ExecutiveSponsor = f.ExecutiveSponsor
	p.AssignedMembers = copyStrings(f.AssignedMembers)
	p.Status = f.Status
	p.StartDate = copyTime(f.StartDate)
	p.TargetEndDate = copyTime(f.TargetEndDate)
	p.ActualEndDate = copyTime(f.ActualEndDate)
	p.BudgetHours = f.BudgetHours
	p.Priority = f.Priority
}

func (r *projectRepository) Create(ctx context.Context, code string, f model.ProjectFields) (*model.Project, error) {
	defer r.m.write()()

	for _, p := range r.m.st.projects {
		if p.Code == code {
			return nil, goerr.Wrap(model.ErrDuplicate, "project code already exists", goerr.V("code", code))
		}
	}

	now := r.m.st.now()
	p := &model.Project{
		ID:        r.m.st.nextID("projects"),
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProjectFields(p, f)
	r.m.st.projects[p.ID] = p
	return copyProject(p), nil
}

func (r *projectRepository) Update(ctx context.Context, id int64, f model.ProjectFields) (*model.Project, error) {
	defer r.m.write()()

	p, ok := r.m.st.projects[id]
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	applyProjectFields(p, f)
	p.UpdatedAt = r.m.st.now()
	return copyProject(p), nil
}

// Delete emulates ON DELETE CASCADE for every child table. Incidents keep a
// dangling project_id like the relational backend without an FK on it.
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	defer r.m.write()()

	st := r.m.st
	if _, ok := st.projects[id]; !ok {
		return goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("id", id))
	}
	delete(st.projects, id)

	for k, v := range st.milestones {
		if v.ProjectID == id {
			delete(st.milestones, k)
		}
	}
	for k, v := range st.reports {
		if v.ProjectID == id {
			delete(st.reports, k)
		}
	}
	for k, v := range st.timeLogs {
		if v.ProjectID == id {
			delete(st.timeLogs, k)
		}
	}
	for k, v := range st.updates {
		if v.ProjectID == id {
			delete(st.updates, k)
		}
	}
	return nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	defer r.m.read()()
	return int64(len(r.m.st.projects)), nil
}
