package middleware

import (
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/hasnain-nisan/admindash/internal/logger"
	"github.com/hasnain-nisan/admindash/internal/permissions"
	"github.com/hasnain-nisan/admindash/internal/types"
)

// Permissions resolves the bearer token of each request into a
// permissions.PermissionSet stored in the request's user context. With an
// empty secret authorization is disabled and every request may do anything.
func Permissions(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set := permissions.AllowAll()
		if secret != "" {
			token, ok := bearer(c.Get(fiber.HeaderAuthorization))
			if !ok {
				return unauthorized(c, "missing bearer token")
			}
			var err error
			if set, err = permissions.Resolve(secret, token); err != nil {
				logger.Debugf("rejected token from %s: %v", c.IP(), err)
				return unauthorized(c, "invalid token")
			}
		}
		c.SetUserContext(permissions.NewContext(c.UserContext(), set))
		return c.Next()
	}
}

// RequireScope rejects requests whose permission set lacks scope
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !permissions.FromContext(c.UserContext()).Can(scope) {
			resp := types.ErrForbidden("missing scope " + scope)
			return c.Status(resp.Status).JSON(resp)
		}
		return c.Next()
	}
}

func bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	resp := types.ErrUnauthorized(msg)
	return c.Status(resp.Status).JSON(resp)
}
