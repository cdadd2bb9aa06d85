// Package fetch opens remote links as byte streams. Plain http(s) links
// (presigned URLs included), Google Cloud Storage objects (gs://bucket/object)
// and S3 objects (s3://bucket/key) are supported.
package fetch

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

var ErrUnsupportedScheme = errors.New("unsupported link scheme")

type Fetcher interface {
	Fetch(ctx context.Context, link string) (io.ReadCloser, error)
}

type FetcherFunc func(ctx context.Context, link string) (io.ReadCloser, error)

func (f FetcherFunc) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	return f(ctx, link)
}

// Router dispatches links to fetchers by URL scheme.
type Router struct {
	schemes map[string]Fetcher
}

func NewRouter() *Router {
	return &Router{schemes: make(map[string]Fetcher)}
}

// Handle registers f for the given schemes.
func (r *Router) Handle(f Fetcher, schemes ...string) *Router {
	for _, s := range schemes {
		r.schemes[strings.ToLower(s)] = f
	}
	return r
}

func (r *Router) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, errors.Wrap(err, "invalid link")
	}
	f, ok := r.schemes[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedScheme, "%q", u.Scheme)
	}
	return f.Fetch(ctx, link)
}

// bucketAddr splits <scheme>://<bucket>/<object> links.
func bucketAddr(link, scheme string) (bucket, object string, err error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != scheme {
		return "", "", errors.Errorf("url does not have %s scheme: %s", scheme, link)
	}
	object = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || object == "" {
		return "", "", errors.Errorf("expected %s://<bucket>/<object>, got %s", scheme, link)
	}
	return u.Host, object, nil
}
