// Package browser opens authorization pages for the user.
package browser

import (
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

type Launcher interface {
	Open(url string) error
}

type LauncherFunc func(url string) error

func (f LauncherFunc) Open(url string) error {
	return f(url)
}

// System opens URLs in the desktop's default browser.
type System struct{}

func (System) Open(url string) error {
	log.Debug().Str("url", url).Msg("Opening browser")
	return browser.OpenURL(url)
}

// Headless never opens anything; the URL is only returned to the caller.
type Headless struct{}

func (Headless) Open(string) error {
	return ErrHeadless
}

// New returns System if enabled, Headless otherwise.
func New(enabled bool) Launcher {
	if enabled {
		return System{}
	}
	return Headless{}
}
