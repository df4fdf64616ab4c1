package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/healthflow/internal/models"
	"github.com/yourorg/healthflow/internal/session"
)

// RequireSession gates every protected route: it resolves the session
// cookie to a live session or rejects the request with 401. On success the
// caller's identity is exposed via c.Locals("userID") / c.Locals("username")
// and the owner id is never read from client input again.
func RequireSession(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Authentication required"})
		}

		sess, ok := sessions.Get(token)
		if !ok {
			// Unknown and expired tokens are indistinguishable to the client
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Authentication required"})
		}

		c.Locals("userID", sess.UserID)
		c.Locals("username", sess.Username)
		return c.Next()
	}
}

// UserID returns the authenticated caller's id set by RequireSession.
func UserID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals("userID").(int64)
	return id, ok
}
