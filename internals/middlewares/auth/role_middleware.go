package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	helper "sepaku_backend/internals/helpers"
)

// OnlyRoles lets the request through when the role set by AuthJWT is one of roles.
func OnlyRoles(forbiddenMessage string, roles ...string) fiber.Handler {
	if forbiddenMessage == "" {
		forbiddenMessage = "forbidden"
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(helper.LocRole).(string)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		zerolog.Ctx(c.UserContext()).Debug().Str("role", role).Str("path", c.Path()).Msg("role rejected")
		return helper.JsonError(c, fiber.StatusForbidden, forbiddenMessage)
	}
}
