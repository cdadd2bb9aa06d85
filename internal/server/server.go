// Package server exposes the upload and authorization callback endpoints.
package server

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	ytapi "google.golang.org/api/youtube/v3"
	"mkuznets.com/go/ytpublish/internal/browser"
	"mkuznets.com/go/ytpublish/internal/intake"
	"mkuznets.com/go/ytpublish/internal/ledger"
	"mkuznets.com/go/ytpublish/internal/staging"
	"mkuznets.com/go/ytpublish/internal/youtube"
)

const (
	uploadPath   = "/upload"
	callbackPath = "/oauth2callback"

	// Request bodies up to this size are buffered in memory, larger ones
	// are streamed to the handler.
	defaultBodyLimit = 32 << 20
)

type Authorizer interface {
	AuthURL(st youtube.State) (string, error)
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

type Publisher interface {
	Publish(ctx context.Context, token *oauth2.Token, media io.Reader, title, description string) (*ytapi.Video, error)
}

type Recorder interface {
	Put(video *ledger.Video) error
}

type Option = func(*Server)

func WithLauncher(l browser.Launcher) Option {
	return func(s *Server) {
		s.launcher = l
	}
}

func WithLedger(r Recorder) Option {
	return func(s *Server) {
		s.ledger = r
	}
}

// WithSuccessURL makes the callback redirect to url after publishing instead
// of responding with a plain text message.
func WithSuccessURL(url string) Option {
	return func(s *Server) {
		s.successURL = url
	}
}

// WithBodyLimit sets the in-memory buffering threshold for request bodies.
// Non-positive values keep the default.
func WithBodyLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.bodyLimit = n
		}
	}
}

type Server struct {
	staging    *staging.Dir
	intake     *intake.Intake
	auth       Authorizer
	publisher  Publisher
	launcher   browser.Launcher
	ledger     Recorder
	successURL string
	bodyLimit  int
	app        *fiber.App
}

func New(dir *staging.Dir, in *intake.Intake, auth Authorizer, pub Publisher, opts ...Option) *Server {
	s := &Server{
		staging:   dir,
		intake:    in,
		auth:      auth,
		publisher: pub,
		launcher:  browser.Headless{},
		bodyLimit: defaultBodyLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             s.bodyLimit,
		StreamRequestBody:     true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(cors.New())
	s.app.Use(requestLogger)

	s.app.Post(uploadPath, s.handleUpload)
	s.app.Get(callbackPath, s.handleCallback)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return s
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	log.Info().Str("addr", addr).Msg("The app is listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("Request")
	return err
}
