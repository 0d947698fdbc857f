package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Vote handles POST /vote. Both casting and retracting a vote answer 201
// with a message body; the branch taken is reflected in the message.
func (s *Server) Vote(c *fiber.Ctx) error {
	var req struct {
		PostID    uint   `json:"post_id"`
		Direction string `json:"direction"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	added, err := s.voteService.Toggle(c.Context(), currentUserID(c), req.PostID, req.Direction)
	if err != nil {
		return fail(c, err)
	}

	message := "successfully deleted vote"
	if added {
		message = "successfully added vote"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}
