package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the opaque session token.
const SessionCookie = "warbler_session"

// SessionResolver resolves a session token to a user id. A resolver returns
// (0, nil) for tokens that do not map to a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uint, error)
}

// LoadSession resolves the session cookie on every request and, when it maps
// to a live session, stores the user id in Locals and the request context.
// A missing, stale or malformed token leaves the request anonymous; it never
// fails the request.
func LoadSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return c.Next()
		}

		userID, err := resolver.Resolve(c.UserContext(), token)
		if err != nil || userID == 0 {
			// Treat as anonymous; the store logs resolution failures.
			return c.Next()
		}

		c.Locals("userID", userID)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, userID))
		return c.Next()
	}
}

// AuthRequired enforces authentication for protected routes. It must run
// after LoadSession.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access unauthorized",
			})
		}
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user id for the request, or 0 when
// the request is anonymous.
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
