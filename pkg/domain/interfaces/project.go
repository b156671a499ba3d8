package interfaces

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
)

// ProjectRepository lists projects newest first.
type ProjectRepository interface {
	List(ctx context.Context, opts ...ListProjectOption) ([]*model.Project, error)
	Get(ctx context.Context, id int64) (*model.Project, error)

	// GetByCode returns nil, nil if no project has the code.
	GetByCode(ctx context.Context, code string) (*model.Project, error)

	// ListCodes returns every project code starting with prefix.
	ListCodes(ctx context.Context, prefix string) ([]string, error)

	// Create returns model.ErrDuplicate when code is taken.
	Create(ctx context.Context, code string, f model.ProjectFields) (*model.Project, error)

	// Update replaces the editable columns. The code never changes.
	Update(ctx context.Context, id int64, f model.ProjectFields) (*model.Project, error)

	// Delete removes the project together with its milestones, status
	// reports, time logs and history.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// ListProjectOption is a functional option for filtering projects in List
type ListProjectOption func(*listProjectConfig)

type listProjectConfig struct {
	status *types.ProjectStatus
}

// WithProjectStatus keeps projects in one status.
func WithProjectStatus(status types.ProjectStatus) ListProjectOption {
	return func(c *listProjectConfig) {
		c.status = &status
	}
}

// BuildListProjectConfig builds a listProjectConfig from options
func BuildListProjectConfig(opts ...ListProjectOption) *listProjectConfig {
	cfg := &listProjectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Status returns the status filter value, or nil if not set
func (c *listProjectConfig) Status() *types.ProjectStatus {
	return c.status
}
