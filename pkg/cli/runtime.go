package cli

import (
	"context"
	"io"
	"os"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// runtime is what every command needs: reference tables, an open
// repository and the use cases on top of it.
type runtime struct {
	repo interfaces.Repository
	uc   *usecase.UseCases
}

func (r *runtime) Close() {
	if err := r.repo.Close(); err != nil {
		logging.Default().Error("failed to close repository", logging.ErrAttr(err))
	}
}

func newRuntime(ctx context.Context, appCfg *config.App, repoCfg *config.Repository, opts ...usecase.Option) (*runtime, error) {
	ref, err := appCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration")
	}

	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}

	opts = append([]usecase.Option{usecase.WithReference(ref)}, opts...)
	return &runtime{
		repo: repo,
		uc:   usecase.New(repo, opts...),
	}, nil
}

func writerOf(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
