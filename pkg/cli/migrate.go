package cli

import (
	"context"
	"fmt"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create or upgrade the schema and seed an empty database",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Migrate configuration", "repository", repoCfg, "config", appCfg)

			// Opening the repository applies the schema.
			rt, err := newRuntime(ctx, &appCfg, &repoCfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.uc.Bootstrap.Seed(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to seed database")
			}

			w := writerOf(c)
			_, _ = color.New(color.FgGreen, color.Bold).Fprintln(w, "Schema is up to date")
			fmt.Fprintf(w, "  users:          %d seeded\n", result.Users)
			fmt.Fprintf(w, "  projects:       %d seeded\n", result.Projects)
			fmt.Fprintf(w, "  milestones:     %d seeded\n", result.Milestones)
			fmt.Fprintf(w, "  status reports: %d seeded\n", result.StatusReports)
			return nil
		},
	}
}
