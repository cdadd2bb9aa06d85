package youtube

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const userAgent = "ytpublish"

// NewService returns a YouTube client authorized by tokenSource. Extra
// options are applied last, so tests can point it at a local endpoint.
func NewService(ctx context.Context, tokenSource oauth2.TokenSource, opts ...option.ClientOption) (*youtube.Service, error) {
	all := append([]option.ClientOption{
		option.WithTokenSource(tokenSource),
		option.WithUserAgent(userAgent),
	}, opts...)

	service, err := youtube.NewService(ctx, all...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create youtube client")
	}
	return service, nil
}
