package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

// LocalsKey is where Middleware stores the verified profile; the
// websocket upgrade handler reads it from the connection's locals.
const LocalsKey = "authUser"

// Middleware enforces a valid bearer token and stores the verified profile
// in the request locals. Failure short-circuits every downstream handler.
func Middleware(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			return domain.Unauthorized("Unauthorized")
		}

		user, err := svc.Verify(tokenString)
		if err != nil {
			return err
		}

		c.Locals(LocalsKey, user)
		return c.Next()
	}
}

// UserFrom returns the profile stored by Middleware. The zero view means
// the middleware did not run, which is a routing bug, not a user error.
func UserFrom(c *fiber.Ctx) domain.UserView {
	user, _ := c.Locals(LocalsKey).(domain.UserView)
	return user
}
