package fetch

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// GCS reads gs://bucket/object links using application default credentials.
type GCS struct {
	opts []option.ClientOption
}

func NewGCS(opts ...option.ClientOption) *GCS {
	return &GCS{opts: opts}
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	err := r.Reader.Close()
	if e := r.client.Close(); err == nil {
		err = e
	}
	return err
}

func (g *GCS) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	bucket, object, err := bucketAddr(link, "gs")
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx, g.opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create storage client")
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		// noinspection GoUnhandledErrorResult
		client.Close() // nolint
		return nil, errors.Wrapf(err, "could not read gs://%s/%s", bucket, object)
	}

	return &gcsReader{Reader: r, client: client}, nil
}
