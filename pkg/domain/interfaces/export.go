package interfaces

import "context"

// ExportSink stores exported files. Put returns where the file was written.
type ExportSink interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}
