// Package middleware holds the fiber middleware of the v1 API
package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	log "github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/permissions"
)

// Logger returns a middleware that logs HTTP requests
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain
		err := c.Next()

		stop := time.Now()
		fields := map[string]interface{}{
			"timestamp":  stop.Format("2006/01/02 - 15:04:05"),
			"status":     c.Response().StatusCode(),
			"latency":    stop.Sub(start),
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"handler":    c.Route().Name,
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		}
		if subject := permissions.FromContext(c.UserContext()).Subject; subject != "" {
			fields["subject"] = subject
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		log.InfoWithFields("Request", fields)

		return err
	}
}
