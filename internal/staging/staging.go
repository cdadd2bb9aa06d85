// Package staging manages the directory holding uploaded videos between
// intake and publishing.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/utils"
)

var ErrInvalidName = errors.New("invalid staged file name")

type Option = func(*Dir)

// WithRemoveFunc replaces the function used to delete staged files.
func WithRemoveFunc(f func(string) error) Option {
	return func(d *Dir) {
		d.remove = f
	}
}

type Dir struct {
	root   string
	remove func(string) error
}

// New checks that root is an existing writable directory.
func New(root string, opts ...Option) (*Dir, error) {
	if err := utils.IsWritableDir(root); err != nil {
		return nil, errors.Wrap(err, "staging directory")
	}
	d := &Dir{root: root, remove: os.Remove}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Dir) Root() string {
	return d.root
}

// Name generates a unique file name. If original is not empty, its base name
// is appended after the random identifier.
func Name(original string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	if original == "" {
		return id.String(), nil
	}
	if i := strings.LastIndexByte(original, '\\'); i >= 0 {
		original = original[i+1:]
	}
	base := filepath.Base(filepath.Clean("/" + original))
	if base == "/" || base == "." {
		return id.String(), nil
	}
	return fmt.Sprintf("%s-%s", id, base), nil
}

// Path resolves a staged file name to its location. Names must be bare
// file names: anything that could escape the directory is rejected.
func (d *Dir) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	return filepath.Join(d.root, name), nil
}

// Create stages the content of r under the given name. On any error the
// partially written file is removed.
func (d *Dir) Create(name string, r io.Reader) (n int64, err error) {
	path, err := d.Path(name)
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
		if err != nil {
			if e := os.Remove(path); e != nil && !os.IsNotExist(e) {
				log.Warn().Err(e).Str("path", path).Msg("Could not remove partial file")
			}
		}
	}()

	return io.Copy(f, r)
}

func (d *Dir) Open(name string) (*os.File, error) {
	path, err := d.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Exists reports whether the named file is present.
func (d *Dir) Exists(name string) bool {
	path, err := d.Path(name)
	if err != nil {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Remove deletes the named file. Failures are logged and reported but
// callers treat them as non-fatal.
func (d *Dir) Remove(name string) error {
	path, err := d.Path(name)
	if err != nil {
		return err
	}
	if err := d.remove(path); err != nil {
		log.Error().Err(err).Str("filename", name).Msg("Error deleting file")
		return err
	}
	log.Debug().Str("filename", name).Msg("File deleted")
	return nil
}
