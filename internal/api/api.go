// Package api serves the transcript pipeline over a small JSON REST endpoint.
package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
)

// Processor runs one video URL through the transcript pipeline.
type Processor interface {
	Process(ctx context.Context, rawURL string) (*toolutil.ProcessOutput, error)
}

// Config controls the REST server.
type Config struct {
	APIKey       string
	RateLimit    float64 // requests per second; <= 0 disables limiting
	RateBurst    int
	WriteTimeout time.Duration
}

type processRequest struct {
	URL any `json:"url"`
}

// New builds the fiber app exposing POST /api/process.
func New(p Processor, c Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "go_transcript",
		DisableStartupMessage: true,
		WriteTimeout:          c.WriteTimeout,
	})

	var limiter *rate.Limiter
	if c.RateLimit > 0 {
		burst := c.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(c.RateLimit), burst)
	}

	// Key check first: rejected callers must not spend the shared budget.
	app.Post("/api/process", requireAPIKey(c.APIKey), rateLimit(limiter), handleProcess(p))
	return app
}

// requireAPIKey checks the x-api-key header in constant time.
func requireAPIKey(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got := c.Get("x-api-key")
		if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			engine.IncrAPIRejected()
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized - Invalid API key"})
		}
		return c.Next()
	}
}

func handleProcess(p Processor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		engine.IncrAPIRequests()
		reqID := uuid.NewString()

		var body processRequest
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Bad Request - invalid JSON body")
		}
		rawURL, ok := body.URL.(string)
		if !ok || rawURL == "" {
			return badRequest(c, "Bad Request - URL is required and must be a string")
		}
		if !transcript.ValidVideoURL(rawURL) {
			return badRequest(c, "Bad Request - Invalid YouTube URL")
		}

		out, err := p.Process(c.UserContext(), rawURL)
		if err != nil {
			slog.Warn("api: process failed",
				slog.String("req", reqID), slog.String("url", rawURL), slog.Any("error", err))
			status := statusFor(err)
			if status == fiber.StatusBadRequest {
				return badRequest(c, "Bad Request - Invalid YouTube URL")
			}
			return c.Status(status).JSON(fiber.Map{"error": fiberStatusText(status), "message": err.Error()})
		}
		slog.Info("api: transcript served",
			slog.String("req", reqID), slog.String("url", rawURL), slog.Int("segments", len(out.Segments)))
		return c.JSON(out)
	}
}

// statusFor maps pipeline error kinds to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, transcript.ErrNoCaptions) {
		return fiber.StatusNotFound
	}
	switch transcript.KindOf(err) {
	case transcript.KindInvalidInput:
		return fiber.StatusBadRequest
	case transcript.KindAcquisition:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func fiberStatusText(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusBadGateway:
		return "Bad Gateway"
	}
	return "Internal Server Error"
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
