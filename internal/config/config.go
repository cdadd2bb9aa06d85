// Package config reads layered YAML configuration: built-in defaults, then a
// file found in the user's config directory, then an explicitly given file.
package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/config"
	"mkuznets.com/go/ytpublish/internal/appdirs"
)

type Reader struct {
	basename      string
	explicitPath  string
	defaultConfig string
}

func New(basename string, opts ...Option) *Reader {
	r := &Reader{basename: basename}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) Read(cfg interface{}) error {
	copts, err := r.options()
	if err != nil {
		return err
	}

	provider, err := config.NewYAML(copts...)
	if err != nil {
		return err
	}

	if err := provider.Get(config.Root).Populate(cfg); err != nil {
		return errors.Wrap(err, "could not populate config")
	}

	return nil
}

func (r *Reader) options() ([]config.YAMLOption, error) {
	options := make([]config.YAMLOption, 0)

	// Default config
	options = append(options, config.Source(strings.NewReader(r.defaultConfig)))

	// Alternative config from one of default paths
	if altPath, ok := appdirs.SearchConfig(appdirs.App, r.basename); ok {
		content, err := os.ReadFile(altPath)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read %s", altPath)
		}
		log.Debug().Str("path", altPath).Msg("Using config file")
		options = append(options, config.Source(bytes.NewBuffer(content)))
	}

	// Primary config passed via CLI arguments
	if r.explicitPath != "" {
		absPath, err := homedir.Expand(r.explicitPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", absPath).Msg("Using config file")
		options = append(options, config.File(absPath))
	}

	return options, nil
}

type Option = func(*Reader)

// WithExplicitPath adds a config file that takes precedence over all others.
func WithExplicitPath(path string) Option {
	return func(r *Reader) {
		r.explicitPath = path
	}
}

func WithDefaults(defaults string) Option {
	return func(r *Reader) {
		r.defaultConfig = defaults
	}
}
