package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/athelas-portal/athelas/pkg/cli"
	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestRun_ValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "athelas.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`
[[teams]]
code = "HOS"
name = "Hospice"
`), 0o600)).Required()

	err := cli.Run(context.Background(), []string{"athelas", "validate", "--config", path}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "athelas.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`
[[project_types]]
code = "A"
name = "Broken"
`), 0o600)).Required()

	err := cli.Run(context.Background(), []string{"athelas", "validate", "--config", path}, "test")
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}

func TestRun_MigrateImportExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "athelas.db")
	ctx := context.Background()

	gt.NoError(t, cli.Run(ctx, []string{"athelas", "migrate", "--db-path", db}, "test")).Required()

	csvPath := filepath.Join(dir, "incidents.csv")
	gt.NoError(t, os.WriteFile(csvPath, []byte("inc_number,title,status\nINC100,Printer jam,New\n"), 0o600)).Required()
	gt.NoError(t, cli.Run(ctx, []string{"athelas", "import", "--db-path", db, "--entity", "incidents", "--file", csvPath}, "test")).Required()

	out := filepath.Join(dir, "out")
	gt.NoError(t, os.Mkdir(out, 0o700)).Required()
	gt.NoError(t, cli.Run(ctx, []string{"athelas", "export", "--db-path", db, "--export-dir", out}, "test")).Required()

	entries, err := os.ReadDir(out)
	gt.NoError(t, err).Required()
	gt.Array(t, entries).Length(7)
}

func TestRun_ImportUnknownEntity(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "users.csv")
	gt.NoError(t, os.WriteFile(csvPath, []byte("name\nAnn\n"), 0o600)).Required()

	err := cli.Run(context.Background(), []string{"athelas", "import", "--db-backend", "memory", "--entity", "widgets", "--file", csvPath}, "test")
	gt.Error(t, err)
}
