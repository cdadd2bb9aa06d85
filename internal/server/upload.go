package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
	"mkuznets.com/go/ytpublish/internal/failure"
	"mkuznets.com/go/ytpublish/internal/youtube"
)

const fileField = "videoFile"

type uploadRequest struct {
	Title        string `json:"title" form:"title"`
	Description  string `json:"description" form:"description"`
	Link         string `json:"link" form:"link"`
	PresignedURL string `json:"presignedUrl" form:"presignedUrl"`
}

func (r *uploadRequest) link() string {
	if r.Link != "" {
		return strings.TrimSpace(r.Link)
	}
	return strings.TrimSpace(r.PresignedURL)
}

type uploadResponse struct {
	AuthURL       string `json:"auth_url"`
	Filename      string `json:"filename"`
	BrowserOpened bool   `json:"browser_opened"`
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	log.Info().Msg("Received upload request")

	var req uploadRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		if isMultipart(c) {
			return failure.Wrap(err, failure.LocalIO, "Error uploading file")
		}
		return failure.Wrap(err, failure.ClientInput, "Invalid request body")
	}

	var (
		filename string
		err      error
	)

	if link := req.link(); link != "" {
		filename, err = s.intake.FromLink(c.UserContext(), link)
		if err != nil {
			return err
		}
	} else {
		filename, err = s.fromForm(c)
		if err != nil {
			return err
		}
	}

	if filename == "" {
		return failure.New(failure.ClientInput, "Filename is undefined")
	}

	return s.authorize(c, youtube.State{
		Filename:    filename,
		Title:       req.Title,
		Description: req.Description,
	})
}

// fromForm stages the multipart file. A request without one yields an empty
// name; any other multipart failure is reported.
func (s *Server) fromForm(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile(fileField)
	switch {
	case errors.Is(err, fasthttp.ErrMissingFile), errors.Is(err, fasthttp.ErrNoMultipartForm):
		return "", nil
	case err != nil:
		return "", failure.Wrap(err, failure.LocalIO, "Error uploading file")
	}

	f, err := fh.Open()
	if err != nil {
		return "", failure.Wrap(err, failure.LocalIO, "Error uploading file")
	}
	// noinspection GoUnhandledErrorResult
	defer f.Close() // nolint

	return s.intake.FromFile(fh.Filename, f)
}

// authorize responds with the consent URL after trying to open it in a
// browser. Publishing completes on the callback route.
func (s *Server) authorize(c *fiber.Ctx, st youtube.State) error {
	authURL, err := s.auth.AuthURL(st)
	if err != nil {
		return failure.Wrap(err, failure.Internal, "Error generating OAuth URL")
	}
	log.Info().Str("filename", st.Filename).Str("url", authURL).Msg("OAuth URL generated")

	opened := true
	if err := s.launcher.Open(authURL); err != nil {
		opened = false
		log.Warn().Err(err).Msg("Could not open OAuth URL, returning it to the client")
	}

	return c.Status(fiber.StatusAccepted).JSON(uploadResponse{
		AuthURL:       authURL,
		Filename:      st.Filename,
		BrowserOpened: opened,
	})
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEMultipartForm)
}
