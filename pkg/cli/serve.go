package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	httpctrl "github.com/athelas-portal/athelas/pkg/controller/http"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.App
	var repoCfg config.Repository
	var adminCfg config.Admin
	var cacheCfg config.Cache
	var exportCfg config.Export
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ATHELAS_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, adminCfg.Flags()...)
	flags = append(flags, cacheCfg.Flags()...)
	flags = append(flags, exportCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			flush, err := sentryCfg.Configure(c.Root().Version)
			if err != nil {
				return err
			}
			defer flush()

			sink, closeSink, err := exportCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeSink()

			ucOpts := append(adminCfg.Options(), usecase.WithCache(cacheCfg.Configure()))
			if sink != nil {
				ucOpts = append(ucOpts, usecase.WithExportSink(sink))
			}

			rt, err := newRuntime(ctx, &appCfg, &repoCfg, ucOpts...)
			if err != nil {
				return err
			}
			defer rt.Close()

			logging.Default().Info("Configuration",
				"repository", repoCfg,
				"admin", adminCfg,
				"export", exportCfg,
			)

			if _, err := rt.uc.Bootstrap.Seed(ctx); err != nil {
				return goerr.Wrap(err, "failed to seed database")
			}

			httpHandler := httpctrl.New(rt.uc, httpctrl.WithSecureCookie(adminCfg.SecureCookie()))
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
