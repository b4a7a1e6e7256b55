package handler

import (
	"context"
	"strings"

	"drawguess-service/domain"

	"github.com/gofiber/fiber/v2"
)

const IdentityKey = "identity"

type SessionStore interface {
	GetSession(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthGuard resolves the session token to an identity and stores it in the request locals.
func AuthGuard(store SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": domain.ErrUnauthenticated.Error()})
		}

		identity, err := store.GetSession(c.UserContext(), token)
		if err != nil {
			return c.Status(domain.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
		}

		c.Locals(IdentityKey, *identity)
		return c.Next()
	}
}

// sessionToken looks at the Session cookie, then a bearer token, then the token query
// parameter that browsers use for websocket upgrades.
func sessionToken(c *fiber.Ctx) string {
	if token := c.Cookies("Session"); token != "" {
		return token
	}
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return c.Query("token")
}

func IdentityFrom(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(domain.Identity)
	return identity, ok && identity.UserID != ""
}
