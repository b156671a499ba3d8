package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/safe"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdImport() *cli.Command {
	var entity string
	var file string
	var appCfg config.App
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "entity",
			Aliases:     []string{"e"},
			Usage:       "Table to import into (projects or incidents)",
			Required:    true,
			Destination: &entity,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "CSV file to import",
			Required:    true,
			Destination: &file,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import projects or incidents from a CSV file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := usecase.ParseEntity(entity)
			if err != nil {
				return err
			}

			// #nosec G304 - path is provided by the operator
			f, err := os.Open(file)
			if err != nil {
				return goerr.Wrap(err, "failed to open import file", goerr.V("path", file))
			}
			defer safe.Close(ctx, f, "path", file)

			rt, err := newRuntime(ctx, &appCfg, &repoCfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.uc.Transfer.Import(ctx, e, f)
			if err != nil {
				return goerr.Wrap(err, "import failed", goerr.V("path", file))
			}

			printImportResult(writerOf(c), e, result)
			return nil
		},
	}
}

func printImportResult(w io.Writer, e usecase.Entity, result *model.ImportResult) {
	ok := color.New(color.FgGreen, color.Bold)
	bad := color.New(color.FgRed)

	_, _ = ok.Fprintf(w, "Imported %s: %d rows\n", e, result.Created+result.Updated)
	fmt.Fprintf(w, "  created: %d\n", result.Created)
	fmt.Fprintf(w, "  updated: %d\n", result.Updated)
	if result.Failed == 0 {
		return
	}

	_, _ = bad.Fprintf(w, "  failed:  %d\n", result.Failed)
	for _, re := range result.Errors {
		_, _ = bad.Fprintf(w, "    row %d", re.Row)
		if re.Key != "" {
			_, _ = bad.Fprintf(w, " (%s)", re.Key)
		}
		_, _ = bad.Fprintf(w, ": %s\n", re.Message)
	}
}
