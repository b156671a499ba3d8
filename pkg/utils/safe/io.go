package safe

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/athelas-portal/athelas/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it. Nil
// closers are ignored. attrs are added to the log record.
func Close(ctx context.Context, closer io.Closer, attrs ...any) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("failed to close", append(attrs, logging.ErrAttr(err))...)
	}
}

// Write writes data to w, typically a response body that has already sent
// its status, and logs a failure.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("failed to write response", "bytes", len(data), logging.ErrAttr(err))
	}
}

// Remove deletes a leftover file. A file that is already gone is not an
// error.
func Remove(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.From(ctx).Warn("failed to remove file", "path", path, logging.ErrAttr(err))
	}
}
