package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
	"github.com/rs/zerolog"

	helper "sepaku_backend/internals/helpers"
)

// RequestContext assigns a request id, bounds the request with timeout and
// puts a request-scoped zerolog logger into the user context.
func RequestContext(log zerolog.Logger, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals(helper.LocRequestID, id)

		reqLog := log.With().Str("request_id", id).Logger()
		ctx, cancel := context.WithTimeout(reqLog.WithContext(c.Context()), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()
		reqLog.Debug().
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("dur", time.Since(start)).
			Msg("request")
		return err
	}
}
