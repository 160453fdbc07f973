package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie = "medovik_session"
	sessionLocal  = "cart_session"
)

// CartSession assigns every visitor a stable cart session id via a
// long-lived cookie. Handlers read it with GetCartSession.
func CartSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := c.Cookies(sessionCookie)
		if session == "" {
			session = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    session,
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionLocal, session)
		return c.Next()
	}
}

// GetCartSession returns the request's cart session id.
func GetCartSession(c *fiber.Ctx) string {
	if session, ok := c.Locals(sessionLocal).(string); ok {
		return session
	}
	return ""
}
