package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestRepositoryConfigure(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "athelas.db")
		repo, err := config.NewRepositoryForTest("sqlite", path).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("sqlite requires a path", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("sqlite", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "").Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})
}

func TestCacheConfigure(t *testing.T) {
	gt.Value(t, config.NewCacheForTest(0).Configure()).Nil()

	c := config.NewCacheForTest(time.Minute).Configure()
	gt.Value(t, c).NotNil().Required()
	gt.V(t, c.TTL()).Equal(time.Minute)
}

func TestExportConfigure(t *testing.T) {
	t.Run("no destination", func(t *testing.T) {
		sink, closer, err := config.NewExportForTest("").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, sink).Nil()
		closer()
	})

	t.Run("local directory", func(t *testing.T) {
		dir := t.TempDir()
		sink, closer, err := config.NewExportForTest(dir).Configure(t.Context())
		gt.NoError(t, err).Required()
		defer closer()

		loc, err := sink.Put(t.Context(), "users.csv", "text/csv", []byte("id\n"))
		gt.NoError(t, err).Required()
		gt.V(t, loc).Equal(filepath.Join(dir, "users.csv"))
	})
}
