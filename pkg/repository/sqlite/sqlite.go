package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/glebarez/sqlite"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultBusyTimeout   = 10 * time.Second
	defaultSlowThreshold = 200 * time.Millisecond
)

// Repository stores every table in one SQLite file through gorm.
type Repository struct {
	db   *gorm.DB
	root bool
}

var _ interfaces.Repository = &Repository{}

type config struct {
	busyTimeout   time.Duration
	slowThreshold time.Duration
	logLevel      logger.LogLevel
}

// Option configures New.
type Option func(*config)

// WithBusyTimeout bounds how long a writer waits for the database lock
// before failing with model.ErrStorageUnavailable.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *config) {
		c.busyTimeout = d
	}
}

// WithSQLLog logs every statement at debug level.
func WithSQLLog() Option {
	return func(c *config) {
		c.logLevel = logger.Info
	}
}

// dsn enables foreign keys (cascade deletes depend on it), WAL so readers
// do not block the writer, a bounded busy wait and immediate write locks.
func dsn(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "synchronous(NORMAL)")
	q.Set("_txlock", "immediate")
	return path + "?" + q.Encode()
}

// New opens (creating if needed) the database at path and runs the additive
// migration.
func New(ctx context.Context, path string, opts ...Option) (*Repository, error) {
	cfg := &config{
		busyTimeout:   defaultBusyTimeout,
		slowThreshold: defaultSlowThreshold,
		logLevel:      logger.Warn,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(dsn(path, cfg.busyTimeout)), &gorm.Config{
		Logger:         newGormLogger(cfg.slowThreshold).LogMode(cfg.logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	if err := migrate(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, goerr.Wrap(err, "failed to migrate sqlite database", goerr.V("path", path))
	}

	return &Repository{db: db, root: true}, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository) User() interfaces.UserRepository           { return &userRepository{r: r} }
func (r *Repository) Project() interfaces.ProjectRepository     { return &projectRepository{r: r} }
func (r *Repository) Incident() interfaces.IncidentRepository   { return &incidentRepository{r: r} }
func (r *Repository) Milestone() interfaces.MilestoneRepository { return &milestoneRepository{r: r} }
func (r *Repository) StatusReport() interfaces.StatusReportRepository {
	return &statusReportRepository{r: r}
}
func (r *Repository) TimeLog() interfaces.TimeLogRepository { return &timeLogRepository{r: r} }
func (r *Repository) ProjectUpdate() interfaces.ProjectUpdateRepository {
	return &projectUpdateRepository{r: r}
}
func (r *Repository) Report() interfaces.ReportRepository { return &reportRepository{r: r} }

// RunInTx runs fn inside a transaction. Nested calls become savepoints.
func (r *Repository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Repository) error) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Repository{db: tx})
	})
}

// Close releases the connection pool. Repositories bound to a transaction
// do not own the pool and ignore Close.
func (r *Repository) Close() error {
	if !r.root {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return goerr.Wrap(err, "failed to get sql.DB")
	}
	if err := sqlDB.Close(); err != nil {
		return goerr.Wrap(err, "failed to close sqlite database")
	}
	return nil
}
