package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func runTransactionTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("RunInTx commits every write", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
			p, err := tx.Project().Create(ctx, "HOS-25-0101", model.ProjectFields{Name: "Portal"})
			if err != nil {
				return err
			}
			_, err = tx.ProjectUpdate().Create(ctx, p.ID, model.ProjectUpdateFields{Type: types.UpdateCreated})
			return err
		})
		gt.NoError(t, err).Required()

		p, err := repo.Project().GetByCode(ctx, "HOS-25-0101")
		gt.NoError(t, err).Required()
		gt.Value(t, p).NotNil().Required()
		history, err := repo.ProjectUpdate().ListByProject(ctx, p.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(1)
	})

	t.Run("RunInTx rolls back on error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		createProject(t, repo, "HOS-25-0100", "Existing")

		errBoom := errors.New("boom")
		err := repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
			p, err := tx.Project().Create(ctx, "HOS-25-0101", model.ProjectFields{Name: "Portal"})
			if err != nil {
				return err
			}
			if _, err := tx.ProjectUpdate().Create(ctx, p.ID, model.ProjectUpdateFields{Type: types.UpdateCreated}); err != nil {
				return err
			}
			return errBoom
		})
		gt.Error(t, err).Is(errBoom)

		p, err := repo.Project().GetByCode(ctx, "HOS-25-0101")
		gt.NoError(t, err).Required()
		gt.Value(t, p).Nil()

		n, err := repo.Project().Count(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(1))

		all, err := repo.ProjectUpdate().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})

	t.Run("RunInTx sees its own writes", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
			u, err := tx.User().Create(ctx, model.UserFields{Name: "Alice", Team: "HOS", IsActive: true})
			if err != nil {
				return err
			}
			got, err := tx.User().Get(ctx, u.ID)
			if err != nil {
				return err
			}
			gt.Value(t, got.Name).Equal("Alice")
			return nil
		})
		gt.NoError(t, err).Required()
	})
}

func TestTransaction_Memory(t *testing.T) {
	runTransactionTest(t, newMemoryRepository)
}

func TestTransaction_SQLite(t *testing.T) {
	runTransactionTest(t, newSQLiteRepository)
}
