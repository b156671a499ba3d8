package cli

import (
	"context"
	"fmt"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.App

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			ref, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			w := writerOf(c)
			_, _ = color.New(color.FgGreen, color.Bold).Fprintln(w, "Configuration is valid")
			fmt.Fprintf(w, "  teams:         %d\n", len(ref.Teams.Teams()))
			fmt.Fprintf(w, "  project types: %d\n", len(ref.ProjectTypes))
			fmt.Fprintf(w, "  seed roster:   %d users on %s\n", len(ref.Roster), ref.RosterTeam)
			fmt.Fprintf(w, "  sample data:   %t\n", ref.SeedSamples)
			return nil
		},
	}
}
