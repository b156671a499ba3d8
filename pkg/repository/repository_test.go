package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/repository/memory"
	"github.com/athelas-portal/athelas/pkg/repository/sqlite"
	"github.com/m-mizutani/gt"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "athelas.db")
	repo, err := sqlite.New(context.Background(), path)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func createUser(t *testing.T, repo interfaces.Repository, name string) *model.User {
	t.Helper()
	u, err := repo.User().Create(context.Background(), model.UserFields{
		Name:     name,
		Team:     types.TeamCode("HOS"),
		IsActive: true,
	})
	gt.NoError(t, err).Required()
	return u
}

func createProject(t *testing.T, repo interfaces.Repository, code, name string) *model.Project {
	t.Helper()
	p, err := repo.Project().Create(context.Background(), code, model.ProjectFields{
		Name:        name,
		Status:      types.ProjectStatusPlanning,
		Priority:    types.PriorityMedium,
		BudgetHours: 100,
	})
	gt.NoError(t, err).Required()
	return p
}

func day(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil || d == nil {
		panic("bad test date: " + s)
	}
	return *d
}
