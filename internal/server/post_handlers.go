package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published,omitempty"`
}

// published defaults to true when the client omits it.
func (r postRequest) published() bool {
	if r.Published == nil {
		return true
	}
	return *r.Published
}

// GetPosts handles GET /posts?limit=&skip=&search=
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 10)

	posts, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Search: c.Query("search"),
		Limit:  page.Limit,
		Skip:   page.Skip,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPostByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:    currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:    id,
		CallerID:  currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
		Published: req.published(),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(post)
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), id, currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
