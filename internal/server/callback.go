package server

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	ytapi "google.golang.org/api/youtube/v3"
	"mkuznets.com/go/ytpublish/internal/failure"
	"mkuznets.com/go/ytpublish/internal/ledger"
	"mkuznets.com/go/ytpublish/internal/youtube"
)

const successMessage = "Video uploaded and file deleted successfully."

func (s *Server) handleCallback(c *fiber.Ctx) error {
	code, rawState := c.Query("code"), c.Query("state")
	if code == "" || rawState == "" {
		return failure.New(failure.ClientInput, "Missing state or code")
	}
	log.Info().Msg("OAuth2 callback received")

	st, err := youtube.DecodeState(rawState)
	switch {
	case errors.Is(err, youtube.ErrMissingFilename):
		return failure.Wrap(err, failure.ClientInput, "Filename is undefined")
	case err != nil:
		return failure.Wrap(err, failure.ClientInput, "Invalid state")
	}

	if _, err := s.staging.Path(st.Filename); err != nil {
		return failure.Wrap(err, failure.ClientInput, "Invalid filename")
	}
	if !s.staging.Exists(st.Filename) {
		return failure.New(failure.ClientInput, "File not found")
	}

	ctx := c.UserContext()

	token, err := s.auth.Exchange(ctx, code)
	if err != nil {
		return failure.Wrap(err, failure.AuthExchange, "Error getting tokens")
	}
	log.Info().Msg("Tokens retrieved successfully")

	media, err := s.staging.Open(st.Filename)
	if err != nil {
		return failure.Wrap(err, failure.LocalIO, "Error reading file")
	}
	video, err := s.publisher.Publish(ctx, token, media, st.Title, st.Description)
	// noinspection GoUnhandledErrorResult
	media.Close() // nolint
	if err != nil {
		// The staged file is kept for manual recovery.
		return failure.Wrap(err, failure.Publish, "Error uploading video")
	}

	log.Info().Str("id", video.Id).Str("filename", st.Filename).Msg("Video uploaded")

	s.record(video, st)
	_ = s.staging.Remove(st.Filename)

	if s.successURL != "" {
		return c.Redirect(withVideoID(s.successURL, video.Id), fiber.StatusFound)
	}
	return c.SendString(successMessage)
}

func (s *Server) record(video *ytapi.Video, st youtube.State) {
	if s.ledger == nil {
		return
	}
	entry := &ledger.Video{
		ID:       video.Id,
		Title:    st.Title,
		Filename: st.Filename,
	}
	if video.Status != nil {
		entry.Privacy = video.Status.PrivacyStatus
	}
	if err := s.ledger.Put(entry); err != nil {
		log.Error().Err(err).Str("id", video.Id).Msg("Could not record published video")
	}
}

func withVideoID(target, id string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set("video_id", id)
	u.RawQuery = q.Encode()
	return u.String()
}
