package querycache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/utils/querycache"
	"github.com/m-mizutani/gt"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type item struct {
	Name string `json:"name"`
}

func counter(calls *int, name string) func(context.Context) ([]item, error) {
	return func(context.Context) ([]item, error) {
		*calls++
		return []item{{Name: name}}, nil
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("hit within TTL skips the loader", func(t *testing.T) {
		clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := querycache.New(time.Minute, querycache.WithClock(clk.Now))
		calls := 0

		v, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
		gt.NoError(t, err).Required()
		gt.Value(t, v[0].Name).Equal("a")

		clk.Advance(59 * time.Second)
		v, err = querycache.Get(ctx, c, "users", "all", counter(&calls, "b"))
		gt.NoError(t, err).Required()
		gt.Value(t, v[0].Name).Equal("a")
		gt.Value(t, calls).Equal(1)
	})

	t.Run("expired entry is reloaded", func(t *testing.T) {
		clk := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		c := querycache.New(time.Minute, querycache.WithClock(clk.Now))
		calls := 0

		_, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
		gt.NoError(t, err).Required()

		clk.Advance(time.Minute)
		v, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "b"))
		gt.NoError(t, err).Required()
		gt.Value(t, v[0].Name).Equal("b")
		gt.Value(t, calls).Equal(2)
	})

	t.Run("Invalidate drops only its namespace", func(t *testing.T) {
		c := querycache.New(time.Minute)
		calls := 0

		_, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "u1"))
		gt.NoError(t, err).Required()
		_, err = querycache.Get(ctx, c, "projects", "all", counter(&calls, "p1"))
		gt.NoError(t, err).Required()

		c.Invalidate("users")

		u, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "u2"))
		gt.NoError(t, err).Required()
		gt.Value(t, u[0].Name).Equal("u2")

		p, err := querycache.Get(ctx, c, "projects", "all", counter(&calls, "p2"))
		gt.NoError(t, err).Required()
		gt.Value(t, p[0].Name).Equal("p1")
		gt.Value(t, calls).Equal(3)
	})

	t.Run("hits are independent copies", func(t *testing.T) {
		c := querycache.New(time.Minute)
		calls := 0

		v, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
		gt.NoError(t, err).Required()
		v[0].Name = "mutated"

		v, err = querycache.Get(ctx, c, "users", "all", counter(&calls, "b"))
		gt.NoError(t, err).Required()
		gt.Value(t, v[0].Name).Equal("a")
	})

	t.Run("loader errors are not cached", func(t *testing.T) {
		c := querycache.New(time.Minute)
		errLoad := errors.New("load failed")
		calls := 0

		_, err := querycache.Get(ctx, c, "users", "all", func(context.Context) ([]item, error) {
			calls++
			return nil, errLoad
		})
		gt.Error(t, err).Is(errLoad)

		_, err = querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
		gt.NoError(t, err).Required()
		gt.Value(t, calls).Equal(2)
	})

	t.Run("zero TTL and nil cache disable caching", func(t *testing.T) {
		for _, c := range []*querycache.Cache{nil, querycache.New(0)} {
			calls := 0
			for i := 0; i < 3; i++ {
				_, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
				gt.NoError(t, err).Required()
			}
			gt.Value(t, calls).Equal(3)
			c.Invalidate("users")
		}
	})

	t.Run("Reset drops every namespace", func(t *testing.T) {
		c := querycache.New(time.Minute)
		calls := 0

		_, err := querycache.Get(ctx, c, "users", "all", counter(&calls, "a"))
		gt.NoError(t, err).Required()
		c.Reset()
		_, err = querycache.Get(ctx, c, "users", "all", counter(&calls, "b"))
		gt.NoError(t, err).Required()
		gt.Value(t, calls).Equal(2)
	})
}
