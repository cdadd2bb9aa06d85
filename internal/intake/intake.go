// Package intake stages incoming videos, either streamed in the request body
// or fetched from a remote link.
package intake

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/failure"
	"mkuznets.com/go/ytpublish/internal/fetch"
	"mkuznets.com/go/ytpublish/internal/staging"
)

// Extension of files fetched from links, whose original name is unknown.
const linkExt = ".mp4"

type Intake struct {
	dir     *staging.Dir
	fetcher fetch.Fetcher
}

func New(dir *staging.Dir, fetcher fetch.Fetcher) *Intake {
	return &Intake{dir: dir, fetcher: fetcher}
}

// FromLink downloads the link into a new staged file and returns its name.
// Nothing is left in the staging directory on failure.
func (in *Intake) FromLink(ctx context.Context, link string) (string, error) {
	log.Info().Str("link", link).Msg("Fetching file from link")

	body, err := in.fetcher.Fetch(ctx, link)
	if err != nil {
		return "", failure.Wrap(err, failure.UpstreamFetch, "Error fetching file from link")
	}
	defer func() {
		if err := body.Close(); err != nil {
			log.Debug().Err(err).Msg("Could not close link body")
		}
	}()

	name, err := staging.Name("")
	if err != nil {
		return "", failure.Wrap(err, failure.Internal, "Error generating file name")
	}
	name += linkExt

	src := &fetchReader{r: body}
	n, err := in.dir.Create(name, newProgressReader(src, name))
	if err != nil {
		if src.err != nil {
			return "", failure.Wrap(src.err, failure.UpstreamFetch, "Error fetching file from link")
		}
		return "", failure.Wrap(err, failure.LocalIO, "Error writing file")
	}

	log.Info().Str("filename", name).Int64("size", n).Msg("File fetched and saved")
	return name, nil
}

// FromFile streams r into a new staged file named after original.
func (in *Intake) FromFile(original string, r io.Reader) (string, error) {
	name, err := staging.Name(original)
	if err != nil {
		return "", failure.Wrap(err, failure.Internal, "Error generating file name")
	}

	n, err := in.dir.Create(name, r)
	if err != nil {
		return "", failure.Wrap(errors.Wrap(err, name), failure.LocalIO, "Error uploading file")
	}

	log.Info().Str("filename", name).Int64("size", n).Msg("File uploaded")
	return name, nil
}

// fetchReader remembers read errors so that they can be told apart from
// errors writing to the local file.
type fetchReader struct {
	r   io.Reader
	err error
}

func (f *fetchReader) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if err != nil && err != io.EOF {
		f.err = err
	}
	return n, err
}
