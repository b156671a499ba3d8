package usecase_test

import (
	"context"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestProjectUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generated codes count up per prefix", func(t *testing.T) {
		uc, _ := newUseCases(t)

		for _, want := range []string{"HOS-25-0101", "HOS-25-0102", "HOS-25-0103"} {
			p, err := uc.Project.Create(ctx, usecase.CreateProjectInput{
				Team:   "HOS",
				Type:   "01",
				Fields: model.ProjectFields{Name: "Project " + want},
			})
			gt.NoError(t, err).Required()
			gt.Value(t, p.Code).Equal(want)
		}

		other, err := uc.Project.NextCode(ctx, "hos", "02", 2025)
		gt.NoError(t, err).Required()
		gt.Value(t, other).Equal("HOS-25-0201")
	})

	t.Run("deleting a middle code does not reuse it", func(t *testing.T) {
		uc, _ := newUseCases(t)
		mustProject(t, uc, "BTS-25-0201", "One")
		two := mustProject(t, uc, "BTS-25-0202", "Two")
		mustProject(t, uc, "BTS-25-0203", "Three")
		gt.NoError(t, uc.Project.Delete(ctx, two.ID)).Required()

		next, err := uc.Project.NextCode(ctx, "BTS", "02", 2025)
		gt.NoError(t, err).Required()
		gt.Value(t, next).Equal("BTS-25-0204")
	})

	t.Run("unknown team or type is rejected", func(t *testing.T) {
		uc, _ := newUseCases(t)

		_, err := uc.Project.NextCode(ctx, "ZZZ", "01", 2025)
		gt.Error(t, err).Is(model.ErrInvalidValue)
		_, err = uc.Project.NextCode(ctx, "HOS", "99", 2025)
		gt.Error(t, err).Is(model.ErrInvalidValue)
	})

	t.Run("creation is recorded in history", func(t *testing.T) {
		uc, _ := newUseCases(t)
		p := mustProject(t, uc, "HOS-25-0101", "After Hours")

		history, err := uc.Project.History(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1).Required()
		gt.Value(t, history[0].Type).Equal(types.UpdateCreated)
		gt.Value(t, history[0].UserName).Equal("Linda Chow")
		gt.Value(t, history[0].Text).Equal("Project created: After Hours")
	})

	t.Run("creation without a manager is attributed to System", func(t *testing.T) {
		uc, _ := newUseCases(t)
		p, err := uc.Project.Create(ctx, usecase.CreateProjectInput{Code: "X-1", Fields: model.ProjectFields{Name: "X"}})
		gt.NoError(t, err).Required()

		history, err := uc.Project.History(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, history[0].UserName).Equal(model.SystemActor)
	})

	t.Run("duplicate code leaves the first project untouched", func(t *testing.T) {
		uc, _ := newUseCases(t)
		first := mustProject(t, uc, "HOS-25-0101", "First")

		_, err := uc.Project.Create(ctx, usecase.CreateProjectInput{Code: "HOS-25-0101", Fields: model.ProjectFields{Name: "Second"}})
		gt.Error(t, err).Is(model.ErrDuplicate)

		got, err := uc.Project.Get(ctx, first.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("First")

		all, err := uc.Project.List(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})

	t.Run("missing name fails before any write", func(t *testing.T) {
		uc, _ := newUseCases(t)
		_, err := uc.Project.Create(ctx, usecase.CreateProjectInput{Code: "HOS-25-0101"})
		gt.Error(t, err).Is(model.ErrMissingRequired)

		all, err := uc.Project.List(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})
}

func TestProjectUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("status change appends a history entry", func(t *testing.T) {
		uc, _ := newUseCases(t)
		p := mustProject(t, uc, "HOS-25-0101", "After Hours")

		f := p.Fields()
		f.Status = types.ProjectStatusOnHold
		updated, err := uc.Project.Update(ctx, p.ID, f, "Ann")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.ProjectStatusOnHold)
		gt.Value(t, updated.Code).Equal("HOS-25-0101")

		history, err := uc.Project.History(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2).Required()
		gt.Value(t, history[0].Type).Equal(types.UpdateStatusChange)
		gt.Value(t, history[0].UserName).Equal("Ann")
		gt.Value(t, history[0].Text).Equal("Status: Active -> On Hold")
		gt.Value(t, history[0].OldValue).Equal("Active")
		gt.Value(t, history[0].NewValue).Equal("On Hold")
	})

	t.Run("unchanged status writes no history", func(t *testing.T) {
		uc, _ := newUseCases(t)
		p := mustProject(t, uc, "HOS-25-0101", "After Hours")

		f := p.Fields()
		f.Description = "new text"
		_, err := uc.Project.Update(ctx, p.ID, f, "")
		gt.NoError(t, err).Required()

		history, err := uc.Project.History(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
	})

	t.Run("list reflects updates despite the cache", func(t *testing.T) {
		uc, _ := newUseCases(t)
		p := mustProject(t, uc, "HOS-25-0101", "Before")

		active := types.ProjectStatusActive
		list, err := uc.Project.List(ctx, &active)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)

		f := p.Fields()
		f.Name = "After"
		f.Status = types.ProjectStatusCompleted
		_, err = uc.Project.Update(ctx, p.ID, f, "")
		gt.NoError(t, err).Required()

		list, err = uc.Project.List(ctx, &active)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)

		all, err := uc.Project.List(ctx, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1).Required()
		gt.Value(t, all[0].Name).Equal("After")
	})

	t.Run("unknown project", func(t *testing.T) {
		uc, _ := newUseCases(t)
		_, err := uc.Project.Update(ctx, 7, model.ProjectFields{Name: "X"}, "")
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
		gt.Error(t, uc.Project.Delete(ctx, 7)).Is(usecase.ErrProjectNotFound)
		_, err = uc.Project.History(ctx, 7)
		gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	})
}

func TestProjectUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)
	p := mustProject(t, uc, "HOS-25-0101", "After Hours")
	ann := mustUser(t, uc, "Ann")

	_, err := uc.Project.CreateMilestone(ctx, p.ID, model.MilestoneFields{Name: "Kickoff"})
	gt.NoError(t, err).Required()
	_, err = uc.Project.PublishStatusReport(ctx, p.ID, model.StatusReportFields{})
	gt.NoError(t, err).Required()
	_, err = uc.TimeLog.Log(ctx, usecase.LogTimeInput{TimeLogFields: model.TimeLogFields{
		ProjectID: p.ID, UserID: ann.ID, Date: day("2025-03-01"), Hours: 1, Description: "x",
	}})
	gt.NoError(t, err).Required()

	gt.NoError(t, uc.Project.Delete(ctx, p.ID)).Required()

	_, err = uc.Project.Milestones(ctx, p.ID)
	gt.Error(t, err).Is(usecase.ErrProjectNotFound)
	logs, err := uc.TimeLog.List(ctx, nil)
	gt.NoError(t, err).Required()
	gt.Array(t, logs).Length(0)
}

func TestProjectUseCase_Milestones(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)
	p := mustProject(t, uc, "HOS-25-0101", "After Hours")

	_, err := uc.Project.CreateMilestone(ctx, p.ID, model.MilestoneFields{Name: "Later", StartDate: ptr(day("2025-05-01"))})
	gt.NoError(t, err).Required()
	early, err := uc.Project.CreateMilestone(ctx, p.ID, model.MilestoneFields{Name: "Early", StartDate: ptr(day("2025-01-01"))})
	gt.NoError(t, err).Required()
	gt.Value(t, early.Status).Equal(types.MilestoneOnTrack)

	_, err = uc.Project.CreateMilestone(ctx, p.ID, model.MilestoneFields{Name: "Bad", PercentComplete: 120})
	gt.Error(t, err).Is(model.ErrInvalidValue)
	_, err = uc.Project.CreateMilestone(ctx, 999, model.MilestoneFields{Name: "Orphan"})
	gt.Error(t, err).Is(usecase.ErrProjectNotFound)

	ms, err := uc.Project.Milestones(ctx, p.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, ms).Length(2).Required()
	gt.Value(t, ms[0].Name).Equal("Early")

	f := early.MilestoneFields
	f.PercentComplete = 100
	f.Status = types.MilestoneCompleted
	updated, err := uc.Project.UpdateMilestone(ctx, early.ID, f)
	gt.NoError(t, err).Required()
	gt.Value(t, updated.PercentComplete).Equal(100)

	gt.NoError(t, uc.Project.DeleteMilestone(ctx, early.ID)).Required()
	gt.Error(t, uc.Project.DeleteMilestone(ctx, early.ID)).Is(usecase.ErrMilestoneNotFound)
	_, err = uc.Project.UpdateMilestone(ctx, early.ID, f)
	gt.Error(t, err).Is(usecase.ErrMilestoneNotFound)
}

func TestProjectUseCase_StatusReports(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)
	p := mustProject(t, uc, "HOS-25-0101", "After Hours")

	latest, err := uc.Project.LatestStatusReport(ctx, p.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, latest).Nil()

	_, err = uc.Project.PublishStatusReport(ctx, p.ID, model.StatusReportFields{
		ReportDate:    day("2025-02-01"),
		HealthOverall: types.HealthAtRisk,
	})
	gt.NoError(t, err).Required()
	today, err := uc.Project.PublishStatusReport(ctx, p.ID, model.StatusReportFields{HealthOverall: types.HealthOnTrack})
	gt.NoError(t, err).Required()
	gt.Value(t, today.ReportDate).Equal(day("2025-03-10"))
	gt.Value(t, today.HealthScope).Equal(types.HealthNotStarted)

	latest, err = uc.Project.LatestStatusReport(ctx, p.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, latest.ID).Equal(today.ID)

	reports, err := uc.Project.StatusReports(ctx, p.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, reports).Length(2)

	history, err := uc.Project.History(ctx, p.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, history).Length(3).Required()
	gt.Value(t, history[0].Type).Equal(types.UpdateStatusReport)
	gt.Value(t, history[0].Text).Equal("New formal status report published")
	gt.Value(t, history[0].UserName).Equal(model.SystemActor)

	_, err = uc.Project.PublishStatusReport(ctx, 999, model.StatusReportFields{})
	gt.Error(t, err).Is(usecase.ErrProjectNotFound)
}

func TestProjectUseCase_PostStatusUpdate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCases(t)
	p := mustProject(t, uc, "HOS-25-0101", "After Hours")

	u, err := uc.Project.PostStatusUpdate(ctx, p.ID, "Ann", "  waiting on vendor ")
	gt.NoError(t, err).Required()
	gt.Value(t, u.Type).Equal(types.UpdateStatusUpdate)
	gt.Value(t, u.Text).Equal("waiting on vendor")

	_, err = uc.Project.PostStatusUpdate(ctx, p.ID, "Ann", " ")
	gt.Error(t, err).Is(model.ErrMissingRequired)
	_, err = uc.Project.PostStatusUpdate(ctx, 999, "Ann", "text")
	gt.Error(t, err).Is(usecase.ErrProjectNotFound)
}
