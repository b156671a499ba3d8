package interfaces

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
)

// UserRepository lists users ordered by name.
type UserRepository interface {
	List(ctx context.Context, opts ...ListUserOption) ([]*model.User, error)

	// Get returns model.ErrNotFound when id does not exist.
	Get(ctx context.Context, id int64) (*model.User, error)

	// Create returns model.ErrDuplicate when the name is taken.
	Create(ctx context.Context, f model.UserFields) (*model.User, error)
	Update(ctx context.Context, id int64, f model.UserFields) (*model.User, error)

	// Delete returns model.ErrReferenced when the database still enforces a
	// foreign key from time_logs to the user.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// ListUserOption is a functional option for filtering users in List
type ListUserOption func(*listUserConfig)

type listUserConfig struct {
	activeOnly bool
	team       string
}

// WithActiveOnly excludes deactivated users.
func WithActiveOnly() ListUserOption {
	return func(c *listUserConfig) {
		c.activeOnly = true
	}
}

// WithTeam keeps users of one team.
func WithTeam(team string) ListUserOption {
	return func(c *listUserConfig) {
		c.team = team
	}
}

// BuildListUserConfig builds a listUserConfig from options
func BuildListUserConfig(opts ...ListUserOption) *listUserConfig {
	cfg := &listUserConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *listUserConfig) ActiveOnly() bool { return c.activeOnly }
func (c *listUserConfig) Team() string     { return c.team }

// Match applies the filter to u.
func (c *listUserConfig) Match(u *model.User) bool {
	if c.activeOnly && !u.IsActive {
		return false
	}
	if c.team != "" && string(u.Team) != c.team {
		return false
	}
	return true
}
