package middleware

import (
	"errors"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/metrics"
)

// Metrics returns a middleware that records request counts and latency by
// route name
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// the error handler has not written the response yet
			status = fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				status = e.Code
			}
		}
		route := c.Route().Name
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
