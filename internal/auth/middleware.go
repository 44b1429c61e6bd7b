package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "auth_identity"

// Middleware rejects requests without a valid bearer token and stores the
// decoded identity in the request locals. A missing token is 401; a token
// that fails verification is 403, matching the token contract exposed to
// clients.
func Middleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get("Authorization"))
		if header == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Access token required")
		}

		identity, err := VerifyToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, "Invalid or expired token")
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Middleware. The second
// return is false on routes that did not pass through it.
func IdentityFromCtx(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)
	return identity, ok
}

// UserID is a shorthand for the authenticated user's id; empty when the
// request is unauthenticated.
func UserID(c *fiber.Ctx) string {
	identity, ok := IdentityFromCtx(c)
	if !ok {
		return ""
	}
	return identity.ID
}
