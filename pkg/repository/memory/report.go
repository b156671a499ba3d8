package memory

import (
	"context"
	"sort"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
)

type reportRepository struct {
	m *Memory
}

func (r *reportRepository) IncidentCounts(ctx context.Context) (*model.IncidentCounts, error) {
	defer r.m.read()()

	counts := &model.IncidentCounts{}
	for _, i := range r.m.st.incidents {
		counts.Total++
		if !i.Status.IsActive() {
			continue
		}
		counts.Active++
		if types.IsUnassigned(i.AssignedMember) {
			counts.Unassigned++
		}
	}
	return counts, nil
}

func (r *reportRepository) TimeSummary(ctx context.Context) (*model.TimeSummary, error) {
	defer r.m.read()()

	byProject := map[string]float64{}
	byUser := map[string]float64{}
	summary := &model.TimeSummary{}

	for _, l := range r.m.st.timeLogs {
		p, ok := r.m.st.projects[l.ProjectID]
		if !ok {
			continue
		}
		userName := model.UnknownUserName
		if u, ok := r.m.st.users[l.UserID]; ok {
			userName = u.Name
		}
		summary.TotalHours += l.Hours
		byProject[p.Name] += l.Hours
		byUser[userName] += l.Hours
	}

	summary.ByProject = toBuckets(byProject)
	summary.ByUser = toBuckets(byUser)
	summary.Contributors = int64(len(byUser))
	return summary, nil
}

func (r *reportRepository) UserHours(ctx context.Context, userID int64) (float64, error) {
	defer r.m.read()()

	var total float64
	for _, l := range r.m.st.timeLogs {
		if l.UserID == userID {
			total += l.Hours
		}
	}
	return total, nil
}

func toBuckets(m map[string]float64) []model.HoursBucket {
	out := make([]model.HoursBucket, 0, len(m))
	for label, hours := range m {
		out = append(out, model.HoursBucket{Label: label, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].Label < out[j].Label
	})
	return out
}
