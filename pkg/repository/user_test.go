package repository_test

import (
	"context"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns IDs and List orders by name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		bob := createUser(t, repo, "Bob")
		alice := createUser(t, repo, "Alice")
		gt.Value(t, alice.ID).NotEqual(bob.ID)
		gt.Bool(t, alice.CreatedAt.IsZero()).False()

		users, err := repo.User().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, model.UserNames(users)).Equal([]string{"Alice", "Bob"})
	})

	t.Run("Create rejects a duplicate name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		createUser(t, repo, "Alice")
		_, err := repo.User().Create(ctx, model.UserFields{Name: "Alice", Team: "HOS", IsActive: true})
		gt.Error(t, err).Is(model.ErrDuplicate)
	})

	t.Run("List filters by active flag and team", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		createUser(t, repo, "Alice")
		_, err := repo.User().Create(ctx, model.UserFields{Name: "Carol", Team: "AOP", IsActive: false})
		gt.NoError(t, err).Required()
		_, err = repo.User().Create(ctx, model.UserFields{Name: "Dave", Team: "AOP", IsActive: true})
		gt.NoError(t, err).Required()

		active, err := repo.User().List(ctx, interfaces.WithActiveOnly())
		gt.NoError(t, err).Required()
		gt.Array(t, model.UserNames(active)).Equal([]string{"Alice", "Dave"})

		aop, err := repo.User().List(ctx, interfaces.WithTeam("AOP"))
		gt.NoError(t, err).Required()
		gt.Array(t, model.UserNames(aop)).Equal([]string{"Carol", "Dave"})

		n, err := repo.User().Count(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(3))
	})

	t.Run("Update replaces fields including deactivation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := createUser(t, repo, "Alice")
		updated, err := repo.User().Update(ctx, u.ID, model.UserFields{
			Name:     "Alice Smith",
			Team:     types.TeamCode("RMH"),
			IsActive: false,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Name).Equal("Alice Smith")
		gt.Value(t, updated.Team).Equal(types.TeamCode("RMH"))
		gt.Bool(t, updated.IsActive).False()

		got, err := repo.User().Get(ctx, u.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, got.IsActive).False()
		gt.Bool(t, got.CreatedAt.Equal(u.CreatedAt)).True()
	})

	t.Run("Get, Update and Delete report unknown IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, 999)
		gt.Error(t, err).Is(model.ErrNotFound)

		_, err = repo.User().Update(ctx, 999, model.UserFields{Name: "X", Team: "HOS"})
		gt.Error(t, err).Is(model.ErrNotFound)

		gt.Error(t, repo.User().Delete(ctx, 999)).Is(model.ErrNotFound)
	})

	t.Run("Delete keeps the user's time logs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		u := createUser(t, repo, "Alice")
		p := createProject(t, repo, "HOS-25-0101", "Portal")
		_, err := repo.TimeLog().Create(ctx, model.TimeLogFields{
			ProjectID:   p.ID,
			UserID:      u.ID,
			Date:        day("2025-03-01"),
			Hours:       2,
			Description: "design",
			Category:    types.TimeDev,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.User().Delete(ctx, u.ID)).Required()

		entries, err := repo.TimeLog().List(ctx, interfaces.WithProjectID(p.ID))
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1).Required()
		gt.Value(t, entries[0].UserName).Equal(model.UnknownUserName)
		gt.Value(t, entries[0].Hours).Equal(2.0)
	})
}

func TestUserRepository_Memory(t *testing.T) {
	runUserRepositoryTest(t, newMemoryRepository)
}

func TestUserRepository_SQLite(t *testing.T) {
	runUserRepositoryTest(t, newSQLiteRepository)
}
