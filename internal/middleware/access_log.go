package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/yashwanthsk20/insta-feed-backend/internal/logging"
	"github.com/yashwanthsk20/insta-feed-backend/internal/metrics"
)

// AccessLog writes one log line per request and records the request
// metrics. Handler errors are rendered here so the logged status is the one
// the client sees.
func AccessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		metrics.RecordAPIRequest(c.Method(), route, status, latency)

		l := logging.Logger()
		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = l.Error()
		case status >= fiber.StatusBadRequest:
			evt = l.Warn()
		default:
			evt = l.Info()
		}
		evt.Str("request_id", RequestIDFromLocals(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("request")
		return nil
	}
}
