package api

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// rateLimit rejects requests beyond the limiter's budget with 429.
// One browser launches per accepted request, so the budget is process-wide.
func rateLimit(l *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l != nil && !l.Allow() {
			engine.IncrAPIRejected()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too Many Requests"})
		}
		return c.Next()
	}
}
