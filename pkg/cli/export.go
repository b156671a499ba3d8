package cli

import (
	"context"
	"fmt"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var exportCfg config.Export

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, exportCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export every table as CSV to the configured directory or bucket",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sink, closeSink, err := exportCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeSink()
			if sink == nil {
				return goerr.Wrap(usecase.ErrNoSink, "set --export-dir or --export-gcs-bucket")
			}

			rt, err := newRuntime(ctx, &appCfg, &repoCfg, usecase.WithExportSink(sink))
			if err != nil {
				return err
			}
			defer rt.Close()

			files, err := rt.uc.Transfer.ExportAll(ctx)
			if err != nil {
				return goerr.Wrap(err, "export failed")
			}

			w := writerOf(c)
			_, _ = color.New(color.FgGreen, color.Bold).Fprintf(w, "Exported %d tables\n", len(files))
			for _, f := range files {
				fmt.Fprintf(w, "  %-16s %6d rows  %s\n", f.Entity, f.Rows, f.Location)
			}
			return nil
		},
	}
}
