package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/service"
)

// SubscriptionsHandler exposes subscription endpoints.
type SubscriptionsHandler struct {
	service *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subs *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{service: subs}
}

// Create POST /subscriptions/create.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateSubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sub, err := h.service.Create(c.UserContext(), user, req.CreatorID, req.TierID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.SubscriptionResponse{Subscription: *sub})
}

// Check GET /subscriptions/check/:creatorId.
func (h *SubscriptionsHandler) Check(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ok, err := h.service.IsSubscribed(c.UserContext(), user.ID, c.Params("creatorId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CheckSubscriptionResponse{IsSubscribed: ok})
}

// ForUser GET /subscriptions/user.
func (h *SubscriptionsHandler) ForUser(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	subs, err := h.service.ForSubscriber(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubscriptionsResponse{Subscriptions: subs})
}

// ForCreator GET /subscriptions/creator.
func (h *SubscriptionsHandler) ForCreator(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	subs, err := h.service.ForCreator(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubscriptionsResponse{Subscriptions: subs})
}
