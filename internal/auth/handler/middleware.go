package handler

import (
	"strings"

	"github.com/Felopater-Melika/Questly/internal/auth/service"
	"github.com/Felopater-Melika/Questly/pkg/constant"
	"github.com/gofiber/fiber/v2"
)

// RequireAuth guards a route behind a valid bearer access token and stores
// the subject player id in the request locals under constant.PlayerIDKey.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}

		playerID, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid access token"})
		}

		c.Locals(constant.PlayerIDKey, playerID)

		return c.Next()
	}
}
