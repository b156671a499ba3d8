package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/repository/memory"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/gt"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newSessions(t *testing.T, password string) (*usecase.SessionUseCase, *usecase.UserUseCase, *testClock) {
	t.Helper()
	clk := &testClock{now: fixedNow}
	users := usecase.NewUserUseCase(memory.New(), nil)
	return usecase.NewSessionUseCase(users, password, time.Hour, clk.Now), users, clk
}

func TestSessionUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	sessions, users, clk := newSessions(t, "")

	s := sessions.Resolve(ctx, "")
	gt.String(t, string(s.ID)).NotEqual("")
	gt.Value(t, s.CreatedAt).Equal(fixedNow)

	again := sessions.Resolve(ctx, s.ID)
	gt.Value(t, again.ID).Equal(s.ID)

	ann, err := users.Create(ctx, model.UserFields{Name: "Ann", Team: "BTS", IsActive: true})
	gt.NoError(t, err).Required()

	updated, err := sessions.SelectUser(ctx, s.ID, &ann.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, *updated.CurrentUserID).Equal(ann.ID)

	updated, err = sessions.SetEditingIncident(ctx, s.ID, ptr(int64(5)))
	gt.NoError(t, err).Required()
	gt.Value(t, *updated.EditingIncidentID).Equal(int64(5))

	t.Run("callers get copies", func(t *testing.T) {
		*updated.EditingIncidentID = 99
		got, err := sessions.Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, *got.EditingIncidentID).Equal(int64(5))
	})

	t.Run("flash is read once", func(t *testing.T) {
		gt.NoError(t, sessions.Flash(ctx, s.ID, "saved")).Required()
		msg, err := sessions.TakeFlash(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, msg).Equal("saved")
		msg, err = sessions.TakeFlash(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, msg).Equal("")
	})

	t.Run("reset clears interaction state", func(t *testing.T) {
		reset, err := sessions.Reset(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, reset.ID).Equal(s.ID)
		gt.Value(t, reset.CurrentUserID).Nil()
		gt.Value(t, reset.EditingIncidentID).Nil()
	})

	t.Run("idle sessions expire", func(t *testing.T) {
		clk.Advance(2 * time.Hour)
		_, err := sessions.Get(ctx, s.ID)
		gt.Error(t, err).Is(usecase.ErrSessionNotFound)

		fresh := sessions.Resolve(ctx, s.ID)
		gt.Value(t, fresh.ID).NotEqual(s.ID)
	})
}

func TestSessionUseCase_SelectUser(t *testing.T) {
	ctx := context.Background()
	sessions, users, _ := newSessions(t, "")
	s := sessions.Resolve(ctx, "")

	_, err := sessions.SelectUser(ctx, s.ID, ptr(int64(404)))
	gt.Error(t, err).Is(usecase.ErrUserNotFound)

	gone, err := users.Create(ctx, model.UserFields{Name: "Gone", Team: "BTS", IsActive: false})
	gt.NoError(t, err).Required()
	_, err = sessions.SelectUser(ctx, s.ID, &gone.ID)
	gt.Error(t, err).Is(model.ErrInvalidValue)

	cleared, err := sessions.SelectUser(ctx, s.ID, nil)
	gt.NoError(t, err).Required()
	gt.Value(t, cleared.CurrentUserID).Nil()

	_, err = sessions.SelectUser(ctx, "missing", nil)
	gt.Error(t, err).Is(usecase.ErrSessionNotFound)
}

func TestSessionUseCase_Admin(t *testing.T) {
	ctx := context.Background()

	t.Run("authorisation is per session", func(t *testing.T) {
		sessions, _, _ := newSessions(t, "s3cret")
		a := sessions.Resolve(ctx, "")
		b := sessions.Resolve(ctx, "")

		gt.Error(t, sessions.RequireAdmin(ctx, a.ID)).Is(usecase.ErrAccessDenied)

		_, err := sessions.AdminLogin(ctx, a.ID, "wrong")
		gt.Error(t, err).Is(usecase.ErrAccessDenied)

		got, err := sessions.AdminLogin(ctx, a.ID, "s3cret")
		gt.NoError(t, err).Required()
		gt.Bool(t, got.AdminAuthorized).True()

		gt.NoError(t, sessions.RequireAdmin(ctx, a.ID)).Required()
		gt.Error(t, sessions.RequireAdmin(ctx, b.ID)).Is(usecase.ErrAccessDenied)

		_, err = sessions.AdminLogout(ctx, a.ID)
		gt.NoError(t, err).Required()
		gt.Error(t, sessions.RequireAdmin(ctx, a.ID)).Is(usecase.ErrAccessDenied)
	})

	t.Run("no password keeps the admin area closed", func(t *testing.T) {
		sessions, _, _ := newSessions(t, "")
		s := sessions.Resolve(ctx, "")

		_, err := sessions.AdminLogin(ctx, s.ID, "")
		gt.Error(t, err).Is(usecase.ErrAdminDisabled)
		gt.Error(t, sessions.RequireAdmin(ctx, s.ID)).Is(usecase.ErrAdminDisabled)
	})

	t.Run("purge drops idle sessions", func(t *testing.T) {
		sessions, _, clk := newSessions(t, "")
		sessions.Resolve(ctx, "")
		sessions.Resolve(ctx, "")
		clk.Advance(30 * time.Minute)
		keep := sessions.Resolve(ctx, "")
		clk.Advance(45 * time.Minute)

		gt.Value(t, sessions.Purge(ctx)).Equal(2)
		_, err := sessions.Get(ctx, keep.ID)
		gt.NoError(t, err).Required()
	})

	t.Run("starting a session sweeps expired ones", func(t *testing.T) {
		sessions, _, clk := newSessions(t, "")
		old := sessions.Resolve(ctx, "")
		clk.Advance(2 * time.Hour)

		sessions.Resolve(ctx, "")
		gt.Value(t, sessions.Purge(ctx)).Equal(0)
		_, err := sessions.Get(ctx, old.ID)
		gt.Error(t, err).Is(usecase.ErrSessionNotFound)
	})
}
