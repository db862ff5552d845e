package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/creatorhub/internal/api/dto"
	"github.com/spec-kit/creatorhub/internal/domain"
	"github.com/spec-kit/creatorhub/internal/service"
)

// ContentHandler manages discovery, content CRUD and interactions.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs handler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{service: contentService}
}

// Trending GET /content/trending?category=.
func (h *ContentHandler) Trending(c *fiber.Ctx) error {
	items, err := h.service.Trending(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ContentListResponse{Contents: items})
}

// Categories GET /content/categories.
func (h *ContentHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.service.Categories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CategoriesResponse{Categories: cats})
}

// CreatorContent GET /content/creator.
func (h *ContentHandler) CreatorContent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListByCreator(c.UserContext(), user.ID, true)
	if err != nil {
		return err
	}
	return c.JSON(dto.ContentListResponse{Contents: items})
}

// CreatorStats GET /content/creator/stats.
func (h *ContentHandler) CreatorStats(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{Stats: stats})
}

// UserContent GET /content/user/:id.
func (h *ContentHandler) UserContent(c *fiber.Ctx) error {
	items, err := h.service.ListByCreator(c.UserContext(), c.Params("id"), false)
	if err != nil {
		return err
	}
	return c.JSON(dto.ContentListResponse{Contents: items})
}

// Get GET /content/:id.
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	item, err := h.service.Get(c.UserContext(), c.Params("id"), optionalUser(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.ContentResponse{Content: item})
}

// Create POST /content.
func (h *ContentHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req domain.ContentInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.Create(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ContentResponse{Content: item})
}

// Update PUT /content/:id.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req domain.ContentInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.service.Update(c.UserContext(), user, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.ContentResponse{Content: item})
}

// Delete DELETE /content/:id.
func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), user, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.StatusResponse{Success: true, Message: "Content deleted"})
}

// Like POST /content/:id/like.
func (h *ContentHandler) Like(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	likes, err := h.service.Like(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.LikeResponse{Success: true, Likes: likes})
}

// Unlike DELETE /content/:id/unlike.
func (h *ContentHandler) Unlike(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	likes, err := h.service.Unlike(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.LikeResponse{Success: true, Likes: likes})
}

// Comment POST /content/:id/comment.
func (h *ContentHandler) Comment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	comment, err := h.service.Comment(c.UserContext(), user, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CommentResponse{Comment: *comment})
}

// Comments GET /content/:id/comments.
func (h *ContentHandler) Comments(c *fiber.Ctx) error {
	comments, err := h.service.Comments(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CommentsResponse{Comments: comments})
}
