package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/auth"
	"github.com/spec-kit/creatorhub/internal/domain"
	apperrors "github.com/spec-kit/creatorhub/pkg/util"
)

func currentUser(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func optionalUser(c *fiber.Ctx) *domain.User {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.User
	}
	return nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}
