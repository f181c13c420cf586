package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks responses as uncacheable. Session state and history change
// between requests, so intermediaries must not serve stale copies.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Next()
	}
}
