package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/service"
)

// UsersHandler exposes account and profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{User: user})
}

// Update handles PUT /users/update.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req domain.UserUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.users.Update(c.UserContext(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{User: updated})
}

// Profile handles GET /users/profile/:username.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, err := h.users.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{User: user})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserResponse{User: user})
}

// Tiers handles GET /users/:id/subscription-tiers.
func (h *UsersHandler) Tiers(c *fiber.Ctx) error {
	tiers, err := h.users.Tiers(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TiersResponse{Tiers: tiers})
}

// AddTier handles POST /users/subscription-tiers.
func (h *UsersHandler) AddTier(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.TierRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	tier, err := h.users.AddTier(c.UserContext(), user.ID, domain.SubscriptionTier{
		Name:     req.Name,
		Price:    req.Price,
		Currency: req.Currency,
		Benefits: req.Benefits,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.TierResponse{Tier: tier})
}
