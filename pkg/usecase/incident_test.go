package usecase_test

import (
	"context"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func seedIncidents(t *testing.T, uc *usecase.UseCases) []*model.Incident {
	t.Helper()
	ctx := context.Background()

	rows := []model.IncidentFields{
		{IncNumber: "INC001", Title: "Printer jam", Status: types.IncidentStatusNew, AssignedMember: "Ann"},
		{IncNumber: "INC002", Title: "VPN down", Status: types.IncidentStatusInProgress, AssignedMember: "Unassigned"},
		{IncNumber: "INC003", Title: "Password reset", Status: types.IncidentStatusResolved, AssignedMember: "Bea"},
		{IncNumber: "INC004", Title: "Epic access", Status: types.IncidentStatusNew, Notes: "needs VPN token"},
		{IncNumber: "INC005", Title: "Scanner", Status: types.IncidentStatusClosed, AssignedMember: "Ann"},
	}
	out := make([]*model.Incident, 0, len(rows))
	for _, f := range rows {
		i, err := uc.Incident.Create(ctx, f)
		gt.NoError(t, err).Required()
		out = append(out, i)
	}
	return out
}

func incNumbers(incidents []*model.Incident) []string {
	out := make([]string, len(incidents))
	for i, inc := range incidents {
		out[i] = inc.IncNumber
	}
	return out
}

func TestIncidentUseCase_List(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)
	seedIncidents(t, uc)

	testCases := map[string]struct {
		filter usecase.IncidentFilter
		want   []string
	}{
		"no filter lists newest first": {
			filter: usecase.IncidentFilter{},
			want:   []string{"INC005", "INC004", "INC003", "INC002", "INC001"},
		},
		"status set": {
			filter: usecase.IncidentFilter{Statuses: []types.IncidentStatus{types.IncidentStatusNew, types.IncidentStatusClosed}},
			want:   []string{"INC005", "INC004", "INC001"},
		},
		"unassigned matches empty assignee": {
			filter: usecase.IncidentFilter{Assignees: []string{"Unassigned"}},
			want:   []string{"INC004", "INC002"},
		},
		"assignee and status combine": {
			filter: usecase.IncidentFilter{
				Statuses:  []types.IncidentStatus{types.IncidentStatusNew},
				Assignees: []string{"Ann"},
			},
			want: []string{"INC001"},
		},
		"text search ignores case": {
			filter: usecase.IncidentFilter{Query: "vpn"},
			want:   []string{"INC004", "INC002"},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := uc.Incident.List(ctx, tc.filter)
			gt.NoError(t, err).Required()
			gt.Array(t, incNumbers(got)).Equal(tc.want)
		})
	}
}

func TestIncidentUseCase_CreateUpdate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)

	t.Run("ticket number is required", func(t *testing.T) {
		_, err := uc.Incident.Create(ctx, model.IncidentFields{Title: "no number"})
		gt.Error(t, err).Is(model.ErrMissingRequired)
	})

	t.Run("placeholder assignee is stored empty", func(t *testing.T) {
		i, err := uc.Incident.Create(ctx, model.IncidentFields{IncNumber: "INC9", AssignedMember: "Unassigned"})
		gt.NoError(t, err).Required()
		gt.Value(t, i.AssignedMember).Equal("")
		gt.Value(t, i.Status).Equal(types.IncidentStatusNew)
	})

	t.Run("linked project must exist", func(t *testing.T) {
		_, err := uc.Incident.Create(ctx, model.IncidentFields{IncNumber: "INC10", ProjectID: ptr(int64(77))})
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)

		p := mustProject(t, uc, "HOS-25-0101", "After Hours")
		i, err := uc.Incident.Create(ctx, model.IncidentFields{IncNumber: "INC10", ProjectID: &p.ID})
		gt.NoError(t, err).Required()
		gt.Value(t, *i.ProjectID).Equal(p.ID)
	})

	t.Run("any status may follow any other", func(t *testing.T) {
		i, err := uc.Incident.Create(ctx, model.IncidentFields{IncNumber: "INC11", Status: types.IncidentStatusClosed})
		gt.NoError(t, err).Required()

		f := i.IncidentFields
		f.Status = types.IncidentStatusNew
		updated, err := uc.Incident.Update(ctx, i.ID, f)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.IncidentStatusNew)
	})

	t.Run("unknown incident", func(t *testing.T) {
		_, err := uc.Incident.Get(ctx, 999)
		gt.Error(t, err).Is(usecase.ErrIncidentNotFound)
		_, err = uc.Incident.Update(ctx, 999, model.IncidentFields{IncNumber: "X"})
		gt.Error(t, err).Is(usecase.ErrIncidentNotFound)
		gt.Error(t, uc.Incident.Delete(ctx, 999)).Is(usecase.ErrIncidentNotFound)
	})
}

func TestIncidentUseCase_Bulk(t *testing.T) {
	ctx := context.Background()

	t.Run("bulk update touches only the listed rows", func(t *testing.T) {
		uc, _ := newUseCases(t)
		incidents := seedIncidents(t, uc)

		resolved := types.IncidentStatusResolved
		ids := []int64{incidents[0].ID, incidents[1].ID, incidents[3].ID}
		n, err := uc.Incident.BulkUpdate(ctx, ids, model.IncidentBulkUpdate{Status: &resolved})
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(3))

		for i, inc := range incidents {
			got, err := uc.Incident.Get(ctx, inc.ID)
			gt.NoError(t, err).Required()
			switch i {
			case 0, 1, 3:
				gt.Value(t, got.Status).Equal(types.IncidentStatusResolved)
			default:
				gt.Value(t, got.Status).Equal(inc.Status)
			}
			gt.Value(t, got.Title).Equal(inc.Title)
		}
	})

	t.Run("bulk update needs at least one field", func(t *testing.T) {
		uc, _ := newUseCases(t)
		incidents := seedIncidents(t, uc)

		_, err := uc.Incident.BulkUpdate(ctx, []int64{incidents[0].ID}, model.IncidentBulkUpdate{})
		gt.Error(t, err).Is(usecase.ErrNoFields)
	})

	t.Run("bulk update validates values", func(t *testing.T) {
		uc, _ := newUseCases(t)
		incidents := seedIncidents(t, uc)

		bogus := types.IncidentStatus("Exploded")
		_, err := uc.Incident.BulkUpdate(ctx, []int64{incidents[0].ID}, model.IncidentBulkUpdate{Status: &bogus})
		gt.Error(t, err).Is(model.ErrInvalidValue)
	})

	t.Run("bulk unassign", func(t *testing.T) {
		uc, _ := newUseCases(t)
		incidents := seedIncidents(t, uc)

		n, err := uc.Incident.BulkUpdate(ctx, []int64{incidents[0].ID}, model.IncidentBulkUpdate{AssignedMember: ptr("Unassigned")})
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(1))

		got, err := uc.Incident.Get(ctx, incidents[0].ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.AssignedMember).Equal("")
	})

	t.Run("bulk delete skips unknown ids", func(t *testing.T) {
		uc, _ := newUseCases(t)
		incidents := seedIncidents(t, uc)

		n, err := uc.Incident.BulkDelete(ctx, []int64{incidents[0].ID, incidents[4].ID, 999})
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(2))

		left, err := uc.Incident.List(ctx, usecase.IncidentFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, left).Length(3)

		n, err = uc.Incident.BulkDelete(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(0))
	})
}
