// Package archive stores exported CSV files on the local disk or in Google
// Cloud Storage.
package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidName = goerr.New("invalid export file name")

// Local writes files into one directory.
type Local struct {
	dir string
}

var _ interfaces.ExportSink = &Local{}

// NewLocal creates dir if needed.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, goerr.New("export directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create export directory", goerr.V("dir", dir))
	}
	return &Local{dir: dir}, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// Put writes body to a temporary file and renames it into place so readers
// never see a partial export.
func (l *Local) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	if !validName(name) {
		return "", goerr.Wrap(ErrInvalidName, "name must be a plain file name", goerr.V("name", name))
	}

	tmp, err := os.CreateTemp(l.dir, "."+name+".*")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", l.dir))
	}
	tmpPath := tmp.Name()
	defer safe.Remove(ctx, tmpPath)

	if _, err := tmp.Write(body); err != nil {
		safe.Close(ctx, tmp, "path", tmpPath)
		return "", goerr.Wrap(err, "failed to write export", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to close export", goerr.V("path", tmpPath))
	}

	dst := filepath.Join(l.dir, name)
	if err := os.Rename(tmpPath, dst); err != nil {
		return "", goerr.Wrap(err, "failed to move export into place", goerr.V("path", dst))
	}
	return dst, nil
}
