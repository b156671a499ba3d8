package repository_test

import (
	"context"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runMilestoneRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListByProject orders by start date with undated last", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := createProject(t, repo, "HOS-25-0101", "Portal")
		for _, ms := range []model.MilestoneFields{
			{Name: "Go-live", StartDate: model.DatePtr(day("2025-06-01"))},
			{Name: "Someday"},
			{Name: "Kickoff", StartDate: model.DatePtr(day("2025-01-06"))},
		} {
			ms.Status = types.MilestoneOnTrack
			_, err := repo.Milestone().Create(ctx, p.ID, ms)
			gt.NoError(t, err).Required()
		}

		list, err := repo.Milestone().ListByProject(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3).Required()
		gt.Value(t, list[0].Name).Equal("Kickoff")
		gt.Value(t, list[1].Name).Equal("Go-live")
		gt.Value(t, list[2].Name).Equal("Someday")

		n, err := repo.Milestone().CountByProject(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(3))
	})

	t.Run("Create requires an existing project", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Milestone().Create(context.Background(), 999, model.MilestoneFields{Name: "orphan"})
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := createProject(t, repo, "HOS-25-0101", "Portal")
		ms, err := repo.Milestone().Create(ctx, p.ID, model.MilestoneFields{Name: "Build", Status: types.MilestoneOnTrack})
		gt.NoError(t, err).Required()

		fields := ms.MilestoneFields
		fields.PercentComplete = 60
		fields.Status = types.MilestoneAtRisk
		updated, err := repo.Milestone().Update(ctx, ms.ID, fields)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.PercentComplete).Equal(60)
		gt.Value(t, updated.Status).Equal(types.MilestoneAtRisk)
		gt.Value(t, updated.ProjectID).Equal(p.ID)

		gt.NoError(t, repo.Milestone().Delete(ctx, ms.ID)).Required()
		_, err = repo.Milestone().Get(ctx, ms.ID)
		gt.Error(t, err).Is(model.ErrNotFound)
		gt.Error(t, repo.Milestone().Delete(ctx, ms.ID)).Is(model.ErrNotFound)
	})
}

func runStatusReportRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Latest picks the greatest report date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := createProject(t, repo, "HOS-25-0101", "Portal")

		latest, err := repo.StatusReport().Latest(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest).Nil()

		for _, d := range []string{"2025-02-01", "2025-03-01", "2025-01-01"} {
			_, err := repo.StatusReport().Create(ctx, p.ID, model.StatusReportFields{
				ReportDate:    day(d),
				HealthOverall: types.HealthOnTrack,
			})
			gt.NoError(t, err).Required()
		}

		latest, err = repo.StatusReport().Latest(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest).NotNil().Required()
		gt.Value(t, model.FormatDate(&latest.ReportDate)).Equal("2025-03-01")

		list, err := repo.StatusReport().ListByProject(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3).Required()
		gt.Value(t, model.FormatDate(&list[2].ReportDate)).Equal("2025-01-01")
	})

	t.Run("Latest breaks date ties by insertion order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := createProject(t, repo, "HOS-25-0101", "Portal")
		for _, h := range []types.Health{types.HealthAtRisk, types.HealthOffTrack} {
			_, err := repo.StatusReport().Create(ctx, p.ID, model.StatusReportFields{
				ReportDate:    day("2025-02-01"),
				HealthOverall: h,
			})
			gt.NoError(t, err).Required()
		}

		latest, err := repo.StatusReport().Latest(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, latest.OverallHealth()).Equal(types.HealthOffTrack)
	})

	t.Run("Create requires an existing project", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.StatusReport().Create(context.Background(), 999, model.StatusReportFields{ReportDate: day("2025-01-01")})
		gt.Error(t, err).Is(model.ErrNotFound)
	})
}

func runProjectUpdateRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListByProject returns history newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		p := createProject(t, repo, "HOS-25-0101", "Portal")
		_, err := repo.ProjectUpdate().Create(ctx, p.ID, model.ProjectUpdateFields{
			Type: types.UpdateCreated, UserName: model.SystemActor, Text: "Project created",
		})
		gt.NoError(t, err).Required()
		_, err = repo.ProjectUpdate().Create(ctx, p.ID, model.ProjectUpdateFields{
			Type: types.UpdateStatusChange, UserName: "Alice", OldValue: "Planning", NewValue: "Active",
		})
		gt.NoError(t, err).Required()

		history, err := repo.ProjectUpdate().ListByProject(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2).Required()
		gt.Value(t, history[0].Type).Equal(types.UpdateStatusChange)
		gt.Value(t, history[0].OldValue).Equal("Planning")
		gt.Value(t, history[0].NewValue).Equal("Active")
		gt.Value(t, history[1].UserName).Equal(model.SystemActor)

		all, err := repo.ProjectUpdate().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
	})
}

func TestMilestoneRepository_Memory(t *testing.T) {
	runMilestoneRepositoryTest(t, newMemoryRepository)
}

func TestMilestoneRepository_SQLite(t *testing.T) {
	runMilestoneRepositoryTest(t, newSQLiteRepository)
}

func TestStatusReportRepository_Memory(t *testing.T) {
	runStatusReportRepositoryTest(t, newMemoryRepository)
}

func TestStatusReportRepository_SQLite(t *testing.T) {
	runStatusReportRepositoryTest(t, newSQLiteRepository)
}

func TestProjectUpdateRepository_Memory(t *testing.T) {
	runProjectUpdateRepositoryTest(t, newMemoryRepository)
}

func TestProjectUpdateRepository_SQLite(t *testing.T) {
	runProjectUpdateRepositoryTest(t, newSQLiteRepository)
}
