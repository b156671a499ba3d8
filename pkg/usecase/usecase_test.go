package usecase_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/repository/memory"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/querycache"
	"github.com/m-mizutani/gt"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newUseCases(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	opts = append([]usecase.Option{
		usecase.WithClock(clock),
		usecase.WithCache(querycache.New(time.Minute, querycache.WithClock(clock))),
	}, opts...)
	return usecase.New(repo, opts...), repo
}

func mustUser(t *testing.T, uc *usecase.UseCases, name string) *model.User {
	t.Helper()
	u, err := uc.User.Create(context.Background(), model.UserFields{Name: name, Team: "bts", IsActive: true})
	gt.NoError(t, err).Required()
	return u
}

func mustProject(t *testing.T, uc *usecase.UseCases, code, name string) *model.Project {
	t.Helper()
	p, err := uc.Project.Create(context.Background(), usecase.CreateProjectInput{
		Code: code,
		Fields: model.ProjectFields{
			Name:           name,
			ProjectManager: "Linda Chow",
			Status:         types.ProjectStatusActive,
			BudgetHours:    40,
		},
	})
	gt.NoError(t, err).Required()
	return p
}

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T { return &v }

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
