package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mkuznets.com/go/ytpublish/internal/appdirs"
	"mkuznets.com/go/ytpublish/internal/config"
)

const defaults = `
server:
  listen: ":3001"
fetch:
  timeout: 0s
tags: [a]
`

type testConfig struct {
	Server struct {
		Listen     string `yaml:"listen"`
		SuccessURL string `yaml:"success_url"`
	} `yaml:"server"`
	Fetch struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"fetch"`
	Tags []string `yaml:"tags"`
}

func isolate(t *testing.T) string {
	t.Cleanup(appdirs.Reload)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", t.TempDir())
	appdirs.Reload()
	return dir
}

func TestDefaultsOnly(t *testing.T) {
	isolate(t)

	var cfg testConfig
	require.NoError(t, config.New("ytpublish.yaml", config.WithDefaults(defaults)).Read(&cfg))
	assert.Equal(t, ":3001", cfg.Server.Listen)
	assert.Equal(t, time.Duration(0), cfg.Fetch.Timeout)
	assert.Equal(t, []string{"a"}, cfg.Tags)
}

func TestLayering(t *testing.T) {
	xdg := isolate(t)

	alt := filepath.Join(xdg, "ytpublish", "ytpublish.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(alt), 0o755))
	require.NoError(t, os.WriteFile(alt, []byte("server:\n  listen: \":4000\"\n  success_url: http://a\n"), 0o600))

	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("server:\n  success_url: http://b\nfetch:\n  timeout: 30s\n"), 0o600))

	var cfg testConfig
	reader := config.New(
		"ytpublish.yaml",
		config.WithDefaults(defaults),
		config.WithExplicitPath(explicit),
	)
	require.NoError(t, reader.Read(&cfg))

	assert.Equal(t, ":4000", cfg.Server.Listen)
	assert.Equal(t, "http://b", cfg.Server.SuccessURL)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
}

func TestMissingExplicitFile(t *testing.T) {
	isolate(t)

	var cfg testConfig
	reader := config.New(
		"ytpublish.yaml",
		config.WithDefaults(defaults),
		config.WithExplicitPath(filepath.Join(t.TempDir(), "nope.yaml")),
	)
	assert.Error(t, reader.Read(&cfg))
}
