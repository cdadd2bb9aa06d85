package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/failure"
)

type errorResponse struct {
	Error string `json:"error"`
}

// errorHandler reports classified errors as {"error": message} with the
// status of their kind. Causes are logged, never sent to the client.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorResponse{Error: fe.Message})
	}

	kind := failure.KindOf(err)
	ev := log.Error()
	if kind == failure.ClientInput {
		ev = log.Warn()
	}
	ev.Err(err).Str("kind", kind.String()).Str("path", c.Path()).Msg("Request failed")

	return c.Status(kind.Status()).JSON(errorResponse{Error: failure.Message(err)})
}
