package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// APIKeyAuth guards the tool endpoints with a shared key carried in the
// X-API-Key header. The health probe stays open so orchestrators can
// check liveness without credentials.
func APIKeyAuth(key string) fiber.Handler {
	expected := []byte(key)

	return func(c *fiber.Ctx) error {
		if c.Path() == "/health" {
			return c.Next()
		}

		got := []byte(c.Get("X-API-Key"))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			return fiber.ErrUnauthorized
		}

		return c.Next()
	}
}
