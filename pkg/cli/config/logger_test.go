package config_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/athelas-portal/athelas/pkg/cli/config"
	"github.com/m-mizutani/gt"
)

func TestLoggerConfigure(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "console", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").Configure()
		gt.Error(t, err).Is(config.ErrInvalidConfig)
	})

	t.Run("writes to a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "athelas.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()
		closer()
	})
}

func TestJSONHandlerRedactsPassword(t *testing.T) {
	var buf bytes.Buffer
	h, err := config.NewLogHandler("json", &buf, slog.LevelInfo)
	gt.NoError(t, err).Required()

	slog.New(h).Info("login", "password", "hunter2", "user", "ann")
	gt.String(t, buf.String()).NotContains("hunter2")
	gt.String(t, buf.String()).Contains("ann")
}
