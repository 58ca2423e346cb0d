package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"sepaku_backend/internals/helpers/apperror"
)

// FromError turns a service error into the standard JSON error envelope.
// Only validation, not-found and conflict messages reach the client; everything
// else is logged with the request logger and answered with a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	var ae *apperror.Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case apperror.KindValidation:
			if len(ae.Fields) > 0 {
				return JsonValidationError(c, ae.Fields)
			}
			return JsonError(c, fiber.StatusBadRequest, ae.Message)
		case apperror.KindNotFound:
			return JsonError(c, fiber.StatusNotFound, ae.Message)
		case apperror.KindConflict:
			return JsonError(c, fiber.StatusConflict, ae.Message)
		}
	}

	zerolog.Ctx(c.UserContext()).Error().
		Err(err).
		Str("kind", string(apperror.KindOf(err))).
		Str("path", c.Path()).
		Msg("request failed")
	return JsonError(c, fiber.StatusInternalServerError, "internal server error")
}
