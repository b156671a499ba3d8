package config

import (
	"context"
	"log/slog"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/service/archive"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Export holds CLI flags for where full exports are written. A GCS bucket
// takes precedence over a local directory.
type Export struct {
	dir             string
	bucket          string
	prefix          string
	endpoint        string
	credentialsFile string
}

func (e *Export) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "export-dir",
			Category:    "Export",
			Usage:       "Directory receiving exported CSV files",
			Sources:     cli.EnvVars("ATHELAS_EXPORT_DIR"),
			Destination: &e.dir,
		},
		&cli.StringFlag{
			Name:        "export-gcs-bucket",
			Category:    "Export",
			Usage:       "Cloud Storage bucket receiving exported CSV files",
			Sources:     cli.EnvVars("ATHELAS_EXPORT_GCS_BUCKET"),
			Destination: &e.bucket,
		},
		&cli.StringFlag{
			Name:        "export-gcs-prefix",
			Category:    "Export",
			Usage:       "Object name prefix in the export bucket",
			Sources:     cli.EnvVars("ATHELAS_EXPORT_GCS_PREFIX"),
			Destination: &e.prefix,
		},
		&cli.StringFlag{
			Name:        "export-gcs-endpoint",
			Category:    "Export",
			Usage:       "Cloud Storage endpoint override (emulators)",
			Sources:     cli.EnvVars("ATHELAS_EXPORT_GCS_ENDPOINT"),
			Destination: &e.endpoint,
		},
		&cli.StringFlag{
			Name:        "export-gcs-credentials",
			Category:    "Export",
			Usage:       "Service account key file for Cloud Storage",
			Sources:     cli.EnvVars("ATHELAS_EXPORT_GCS_CREDENTIALS"),
			Destination: &e.credentialsFile,
		},
	}
}

func (e Export) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", e.dir),
		slog.String("bucket", e.bucket),
		slog.String("prefix", e.prefix),
	)
}

// Configure returns the export sink and its closer. Both are nil when no
// destination is configured.
func (e *Export) Configure(ctx context.Context) (interfaces.ExportSink, func(), error) {
	switch {
	case e.bucket != "":
		var opts []archive.GCSOption
		if e.prefix != "" {
			opts = append(opts, archive.WithPrefix(e.prefix))
		}
		if e.endpoint != "" {
			opts = append(opts, archive.WithEndpoint(e.endpoint))
		}
		if e.credentialsFile != "" {
			opts = append(opts, archive.WithCredentialsFile(e.credentialsFile))
		}
		sink, err := archive.NewGCS(ctx, e.bucket, opts...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize export bucket")
		}
		logging.Default().Info("Exports go to Cloud Storage", "bucket", e.bucket, "prefix", e.prefix)
		return sink, func() {
			if err := sink.Close(); err != nil {
				logging.Default().Warn("failed to close export bucket", logging.ErrAttr(err))
			}
		}, nil

	case e.dir != "":
		sink, err := archive.NewLocal(e.dir)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize export directory")
		}
		logging.Default().Info("Exports go to local directory", "dir", e.dir)
		return sink, func() {}, nil

	default:
		return nil, func() {}, nil
	}
}
