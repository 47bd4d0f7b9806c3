package middleware

import "github.com/gofiber/fiber/v2"

// NoStore marks responses as not cacheable. It guards authenticated API
// responses from shared caches.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
