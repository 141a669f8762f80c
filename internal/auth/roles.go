package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/domain"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// RequireAuthenticated ensures a live session is attached to the request.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return util.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireRole ensures the session carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		sess, ok := SessionFromContext(c)
		if !ok {
			return util.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[sess.Role]; !exists {
			return util.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
