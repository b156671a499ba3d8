package repository_test

import (
	"context"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func logTime(t *testing.T, repo interfaces.Repository, projectID, userID int64, date string, hours float64) *model.TimeLog {
	t.Helper()
	l, err := repo.TimeLog().Create(context.Background(), model.TimeLogFields{
		ProjectID:   projectID,
		UserID:      userID,
		Date:        day(date),
		Hours:       hours,
		Description: "work",
		Category:    types.TimeDev,
	})
	gt.NoError(t, err).Required()
	return l
}

func runTimeLogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("List joins user and project and orders by date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		alice := createUser(t, repo, "Alice")
		bob := createUser(t, repo, "Bob")
		p := createProject(t, repo, "HOS-25-0101", "Portal")

		logTime(t, repo, p.ID, alice.ID, "2025-03-01", 1)
		logTime(t, repo, p.ID, bob.ID, "2025-03-03", 2)
		logTime(t, repo, p.ID, alice.ID, "2025-03-02", 3)

		entries, err := repo.TimeLog().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(3).Required()
		gt.Value(t, model.FormatDate(&entries[0].Date)).Equal("2025-03-03")
		gt.Value(t, entries[0].UserName).Equal("Bob")
		gt.Value(t, entries[0].ProjectName).Equal("Portal")
		gt.Value(t, entries[0].ProjectCode).Equal("HOS-25-0101")
		gt.Value(t, entries[0].BudgetHours).Equal(100.0)
		gt.Value(t, entries[0].Category).Equal(types.TimeDev)

		mine, err := repo.TimeLog().List(ctx, interfaces.WithUserID(alice.ID), interfaces.WithLimit(1))
		gt.NoError(t, err).Required()
		gt.Array(t, mine).Length(1).Required()
		gt.Value(t, model.FormatDate(&mine[0].Date)).Equal("2025-03-02")
	})

	t.Run("Create requires an existing project", func(t *testing.T) {
		repo := newRepo(t)
		u := createUser(t, repo, "Alice")
		_, err := repo.TimeLog().Create(context.Background(), model.TimeLogFields{
			ProjectID: 999, UserID: u.ID, Date: day("2025-03-01"), Hours: 1, Description: "x", Category: types.TimeOther,
		})
		gt.Error(t, err).Is(model.ErrNotFound)
	})

	t.Run("TimeSummary totals hours per project and user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		alice := createUser(t, repo, "Alice")
		bob := createUser(t, repo, "Bob")
		portal := createProject(t, repo, "HOS-25-0101", "Portal")
		audit := createProject(t, repo, "HOS-25-0102", "Audit")

		logTime(t, repo, portal.ID, alice.ID, "2025-03-01", 3.5)
		logTime(t, repo, portal.ID, bob.ID, "2025-03-02", 2.0)
		logTime(t, repo, audit.ID, bob.ID, "2025-03-02", 0.5)

		summary, err := repo.Report().TimeSummary(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, summary.TotalHours).Equal(6.0)
		gt.Value(t, summary.Contributors).Equal(int64(2))
		gt.Array(t, summary.ByProject).Length(2).Required()
		gt.Value(t, summary.ByProject[0]).Equal(model.HoursBucket{Label: "Portal", Hours: 5.5})
		gt.Value(t, model.HoursFor(summary.ByUser, "Alice")).Equal(3.5)
		gt.Value(t, model.HoursFor(summary.ByUser, "Bob")).Equal(2.5)

		hours, err := repo.Report().UserHours(ctx, bob.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, hours).Equal(2.5)

		gt.NoError(t, repo.User().Delete(ctx, alice.ID)).Required()
		summary, err = repo.Report().TimeSummary(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, model.HoursFor(summary.ByUser, model.UnknownUserName)).Equal(3.5)
		gt.Value(t, summary.TotalHours).Equal(6.0)
	})

	t.Run("TimeSummary of an empty store", func(t *testing.T) {
		repo := newRepo(t)

		summary, err := repo.Report().TimeSummary(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, summary.TotalHours).Equal(0.0)
		gt.Value(t, summary.Contributors).Equal(int64(0))
		gt.Array(t, summary.ByProject).Length(0)
		gt.Array(t, summary.ByUser).Length(0)
	})
}

func TestTimeLogRepository_Memory(t *testing.T) {
	runTimeLogRepositoryTest(t, newMemoryRepository)
}

func TestTimeLogRepository_SQLite(t *testing.T) {
	runTimeLogRepositoryTest(t, newSQLiteRepository)
}
