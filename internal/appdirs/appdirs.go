// Package appdirs locates per-user directories following the XDG base
// directory layout.
package appdirs

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const App = "ytpublish"

var (
	Home   string
	Data   string
	Config string
)

// Reload re-reads $HOME and the XDG variables.
func Reload() {
	home, err := homedir.Dir()
	if err != nil {
		panic("could not detect home directory")
	}
	Home = home
	Data = xdgPath("XDG_DATA_HOME", home, ".local", "share")
	Config = xdgPath("XDG_CONFIG_HOME", home, ".config")
}

// nolint
func init() {
	Reload()
}

// xdgPath returns the directory named by env if it holds an absolute path,
// falling back to the joined elems.
func xdgPath(env string, fallback ...string) string {
	dir, err := homedir.Expand(os.Getenv(env))
	if err == nil && filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(fallback...)
}

// DataPath returns a path inside the application's data directory.
func DataPath(parts ...string) string {
	return filepath.Join(append([]string{Data, App}, parts...)...)
}

// SearchConfig returns the first existing file named by parts relative to
// the XDG config directory or $HOME/.config.
func SearchConfig(parts ...string) (string, bool) {
	candidates := []string{
		filepath.Join(append([]string{Config}, parts...)...),
		filepath.Join(append([]string{Home, ".config"}, parts...)...),
	}

	seen := make(map[string]bool, len(candidates))
	for _, path := range candidates {
		if seen[path] || !filepath.IsAbs(path) {
			continue
		}
		seen[path] = true
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path, true
		}
	}
	return "", false
}
