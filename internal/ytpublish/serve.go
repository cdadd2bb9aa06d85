package ytpublish

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/browser"
	"mkuznets.com/go/ytpublish/internal/fetch"
	"mkuznets.com/go/ytpublish/internal/intake"
	"mkuznets.com/go/ytpublish/internal/server"
	"mkuznets.com/go/ytpublish/internal/staging"
	"mkuznets.com/go/ytpublish/internal/youtube"
)

const shutdownTimeout = 10 * time.Second

type ServeCommand struct {
	Command
}

func (cmd *ServeCommand) Execute([]string) error {
	defer cmd.Close()
	cfg := cmd.Config

	dir, err := staging.New(cfg.Staging.Dir)
	if err != nil {
		return errors.Wrap(err, "staging")
	}
	dir.CheckSpace()

	router := fetch.NewRouter().
		Handle(fetch.NewHTTP(cfg.Fetch.Timeout), "http", "https").
		Handle(fetch.NewGCS(), "gs").
		Handle(fetch.NewS3(cfg.Fetch.S3), "s3")

	secrets, err := youtube.LoadSecrets(cmd.Ctx, cfg.Youtube.Credentials)
	if err != nil {
		return errors.Wrap(err, "could not load OAuth2 client secrets")
	}
	oauthCfg, err := youtube.NewConfig(secrets, cfg.Youtube.RedirectURL)
	if err != nil {
		return err
	}
	handshake, err := youtube.NewHandshake(oauthCfg)
	if err != nil {
		return err
	}
	log.Info().Str("redirect_url", handshake.RedirectURL()).Msg("OAuth2 client configured")

	publisher := youtube.NewPublisher(handshake, cfg.Youtube.VideoOptions())

	l, err := cmd.openLedger()
	if err != nil {
		return err
	}
	if n, err := l.Count(); err == nil {
		log.Info().Str("path", cfg.Ledger.Path).Int("published", n).Msg("Ledger opened")
	}

	srv := server.New(
		dir,
		intake.New(dir, router),
		handshake,
		publisher,
		server.WithLauncher(browser.New(cfg.Browser.Open)),
		server.WithLedger(l),
		server.WithSuccessURL(cfg.Server.SuccessURL),
		server.WithBodyLimit(cfg.Server.BodyLimit),
	)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(cfg.Server.Listen)
	}()

	select {
	case err := <-errc:
		return err
	case <-cmd.Ctx.Done():
	}

	log.Info().Msg("Shutting down")
	if err := srv.Shutdown(shutdownTimeout); err != nil {
		return err
	}
	return <-errc
}
