package memory

import (
	"context"
	"sort"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type timeLogRepository struct {
	m *Memory
}

func (r *timeLogRepository) Create(ctx context.Context, f model.TimeLogFields) (*model.TimeLog, error) {
	defer r.m.write()()

	if _, ok := r.m.st.projects[f.ProjectID]; !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("project_id", f.ProjectID))
	}

	l := &model.TimeLog{
		ID:            r.m.st.nextID("time_logs"),
		TimeLogFields: f,
		CreatedAt:     r.m.st.now(),
	}
	r.m.st.timeLogs[l.ID] = l
	return copyTimeLog(l), nil
}

func (r *timeLogRepository) List(ctx context.Context, opts ...interfaces.ListTimeLogOption) ([]*model.TimeLogEntry, error) {
	defer r.m.read()()

	cfg := interfaces.BuildListTimeLogConfig(opts...)
	var out []*model.TimeLogEntry
	for _, l := range r.m.st.timeLogs {
		if id := cfg.ProjectID(); id != nil && l.ProjectID != *id {
			continue
		}
		if id := cfg.UserID(); id != nil && l.UserID != *id {
			continue
		}
		p, ok := r.m.st.projects[l.ProjectID]
		if !ok {
			continue
		}
		entry := &model.TimeLogEntry{
			TimeLog:     *copyTimeLog(l),
			UserName:    model.UnknownUserName,
			ProjectName: p.Name,
			ProjectCode: p.Code,
			BudgetHours: p.BudgetHours,
		}
		if u, ok := r.m.st.users[l.UserID]; ok {
			entry.UserName = u.Name
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if limit := cfg.Limit(); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
