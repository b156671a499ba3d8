package interfaces

import (
	"context"

	"github.com/athelas-portal/athelas/pkg/domain/model"
)

// MilestoneRepository lists milestones by start date, undated last.
type MilestoneRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]*model.Milestone, error)
	Get(ctx context.Context, id int64) (*model.Milestone, error)
	Create(ctx context.Context, projectID int64, f model.MilestoneFields) (*model.Milestone, error)
	Update(ctx context.Context, id int64, f model.MilestoneFields) (*model.Milestone, error)
	Delete(ctx context.Context, id int64) error
	CountByProject(ctx context.Context, projectID int64) (int64, error)

	// List returns every milestone ordered by project then start date.
	List(ctx context.Context) ([]*model.Milestone, error)
}

// StatusReportRepository is append-only.
type StatusReportRepository interface {
	// ListByProject returns reports newest report date first.
	ListByProject(ctx context.Context, projectID int64) ([]*model.StatusReport, error)

	// Latest returns the report with the greatest report date, or nil, nil
	// when the project has none. Ties go to the most recently inserted.
	Latest(ctx context.Context, projectID int64) (*model.StatusReport, error)

	Create(ctx context.Context, projectID int64, f model.StatusReportFields) (*model.StatusReport, error)

	// List returns every report ordered by project then report date.
	List(ctx context.Context) ([]*model.StatusReport, error)
}

// TimeLogRepository stores time entries.
type TimeLogRepository interface {
	Create(ctx context.Context, f model.TimeLogFields) (*model.TimeLog, error)

	// List returns joined entries newest date first.
	List(ctx context.Context, opts ...ListTimeLogOption) ([]*model.TimeLogEntry, error)
}

// ProjectUpdateRepository stores project history. Entries are append-only.
type ProjectUpdateRepository interface {
	Create(ctx context.Context, projectID int64, f model.ProjectUpdateFields) (*model.ProjectUpdate, error)

	// ListByProject returns history newest first.
	ListByProject(ctx context.Context, projectID int64) ([]*model.ProjectUpdate, error)

	// List returns the history of every project newest first.
	List(ctx context.Context) ([]*model.ProjectUpdate, error)
}

// ListTimeLogOption is a functional option for filtering time logs in List
type ListTimeLogOption func(*listTimeLogConfig)

type listTimeLogConfig struct {
	projectID *int64
	userID    *int64
	limit     int
}

// WithProjectID keeps entries of one project.
func WithProjectID(id int64) ListTimeLogOption {
	return func(c *listTimeLogConfig) {
		c.projectID = &id
	}
}

// WithUserID keeps entries of one user.
func WithUserID(id int64) ListTimeLogOption {
	return func(c *listTimeLogConfig) {
		c.userID = &id
	}
}

// WithLimit caps the number of entries. Zero means no cap.
func WithLimit(n int) ListTimeLogOption {
	return func(c *listTimeLogConfig) {
		c.limit = n
	}
}

// BuildListTimeLogConfig builds a listTimeLogConfig from options
func BuildListTimeLogConfig(opts ...ListTimeLogOption) *listTimeLogConfig {
	cfg := &listTimeLogConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *listTimeLogConfig) ProjectID() *int64 { return c.projectID }
func (c *listTimeLogConfig) UserID() *int64    { return c.userID }
func (c *listTimeLogConfig) Limit() int        { return c.limit }
