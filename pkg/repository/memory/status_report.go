package memory

import (
	"context"
	"sort"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type statusReportRepository struct {
	m *Memory
}

// newerReport orders by report date then insertion, newest first.
func newerReport(a, b *model.StatusReport) bool {
	if !a.ReportDate.Equal(b.ReportDate) {
		return a.ReportDate.After(b.ReportDate)
	}
	return a.ID > b.ID
}

func (r *statusReportRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.StatusReport, error) {
	defer r.m.read()()

	var out []*model.StatusReport
	for _, rep := range r.m.st.reports {
		if rep.ProjectID == projectID {
			out = append(out, copyStatusReport(rep))
		}
	}
	sort.Slice(out, func(i, j int) bool { return newerReport(out[i], out[j]) })
	return out, nil
}

func (r *statusReportRepository) Latest(ctx context.Context, projectID int64) (*model.StatusReport, error) {
	defer r.m.read()()

	var latest *model.StatusReport
	for _, rep := range r.m.st.reports {
		if rep.ProjectID != projectID {
			continue
		}
		if latest == nil || newerReport(rep, latest) {
			latest = rep
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copyStatusReport(latest), nil
}

func (r *statusReportRepository) List(ctx context.Context) ([]*model.StatusReport, error) {
	defer r.m.read()()

	out := make([]*model.StatusReport, 0, len(r.m.st.reports))
	for _, rep := range r.m.st.reports {
		out = append(out, copyStatusReport(rep))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProjectID != out[j].ProjectID {
			return out[i].ProjectID < out[j].ProjectID
		}
		return newerReport(out[i], out[j])
	})
	return out, nil
}

func (r *statusReportRepository) Create(ctx context.Context, projectID int64, f model.StatusReportFields) (*model.StatusReport, error) {
	defer r.m.write()()

	if _, ok := r.m.st.projects[projectID]; !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "project not found", goerr.V("project_id", projectID))
	}

	rep := copyStatusReport(&model.StatusReport{
		ID:                 r.m.st.nextID("status_reports"),
		ProjectID:          projectID,
		StatusReportFields: f,
		CreatedAt:          r.m.st.now(),
	})
	r.m.st.reports[rep.ID] = rep
	return copyStatusReport(rep), nil
}
