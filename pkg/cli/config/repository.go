package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/repository/memory"
	"github.com/athelas-portal/athelas/pkg/repository/sqlite"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend     string
	path        string
	busyTimeout time.Duration
	sqlLog      bool
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db-backend",
			Category:    "Database",
			Usage:       "Repository backend type (sqlite or memory)",
			Value:       "sqlite",
			Sources:     cli.EnvVars("ATHELAS_DB_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "db-path",
			Category:    "Database",
			Usage:       "SQLite database file",
			Value:       "athelas.db",
			Sources:     cli.EnvVars("ATHELAS_DB_PATH"),
			Destination: &r.path,
		},
		&cli.DurationFlag{
			Name:        "db-busy-timeout",
			Category:    "Database",
			Usage:       "How long a write waits for the database lock",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("ATHELAS_DB_BUSY_TIMEOUT"),
			Destination: &r.busyTimeout,
		},
		&cli.BoolFlag{
			Name:        "db-sql-log",
			Category:    "Database",
			Usage:       "Log every SQL statement at debug level",
			Sources:     cli.EnvVars("ATHELAS_DB_SQL_LOG"),
			Destination: &r.sqlLog,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("path", r.path),
		slog.Duration("busy_timeout", r.busyTimeout),
	)
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "sqlite":
		if r.path == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "db-path is required when using sqlite backend")
		}
		opts := []sqlite.Option{sqlite.WithBusyTimeout(r.busyTimeout)}
		if r.sqlLog {
			opts = append(opts, sqlite.WithSQLLog())
		}
		repo, err := sqlite.New(ctx, r.path, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.path)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V("backend", r.backend))
	}
}
