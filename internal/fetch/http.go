package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// StatusError is returned when the remote server responds with a non-2xx code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return "unexpected response status: " + http.StatusText(e.Code)
}

type HTTP struct {
	client *http.Client
}

// NewHTTP returns an http(s) fetcher. A zero timeout means no timeout.
func NewHTTP(timeout time.Duration) *HTTP {
	return &HTTP{client: &http.Client{Timeout: timeout}}
}

func (h *HTTP) Fetch(ctx context.Context, link string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "GET")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// noinspection GoUnhandledErrorResult
		resp.Body.Close() // nolint
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return resp.Body, nil
}
