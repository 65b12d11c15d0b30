package httpapi

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/billyblackk/forest-phenology-tracking-system/internal/observability"
)

// RequestLogger logs every request with a generated request id, the final
// status, and the end-to-end duration.
func RequestLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals("request_id", reqID)

		start := time.Now()
		err := c.Next()

		logger.Info("request handled",
			"request_id", reqID,
			"method", c.Method(),
			"path", c.Path(),
			"status", statusOf(c, err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// RequestMetrics records request counts and latency per route. The route
// pattern is used instead of the raw path to keep label cardinality bounded.
func RequestMetrics(m *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		m.RequestsTotal.WithLabelValues(c.Method(), path, strconv.Itoa(statusOf(c, err))).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf resolves the status a response will carry once the error handler
// has run, since middleware observes errors before they are rendered.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fiber.StatusInternalServerError
}
