package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

// RequireCreator ensures the authenticated caller owns a creator account.
// It must run after AuthMiddleware.Handle.
func RequireCreator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsCreator {
			return apperrors.NewForbidden("creator account required")
		}
		return c.Next()
	}
}
