package archive

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// GCS writes files as objects under prefix in one bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ExportSink = &GCS{}

type gcsConfig struct {
	prefix  string
	options []option.ClientOption
}

type GCSOption func(*gcsConfig)

// WithPrefix puts every object under prefix.
func WithPrefix(prefix string) GCSOption {
	return func(c *gcsConfig) {
		c.prefix = prefix
	}
}

// WithEndpoint targets an emulator or private endpoint without credentials.
func WithEndpoint(endpoint string) GCSOption {
	return func(c *gcsConfig) {
		c.options = append(c.options, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
}

// WithCredentialsFile authenticates with a service account key file.
func WithCredentialsFile(file string) GCSOption {
	return func(c *gcsConfig) {
		c.options = append(c.options, option.WithCredentialsFile(file))
	}
}

func NewGCS(ctx context.Context, bucket string, opts ...GCSOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is empty")
	}
	cfg := &gcsConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := storage.NewClient(ctx, cfg.options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCS{client: client, bucket: bucket, prefix: cfg.prefix}, nil
}

func (g *GCS) objectName(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

func (g *GCS) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	if !validName(name) {
		return "", goerr.Wrap(ErrInvalidName, "name must be a plain file name", goerr.V("name", name))
	}

	object := g.objectName(name)
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to upload export",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finish export upload",
			goerr.V("bucket", g.bucket), goerr.V("object", object))
	}

	location := "gs://" + g.bucket + "/" + object
	logging.From(ctx).Info("export uploaded", "location", location, "bytes", len(body))
	return location, nil
}

func (g *GCS) Close() error {
	if err := g.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
