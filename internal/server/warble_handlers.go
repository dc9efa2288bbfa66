package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Home handles GET /
// @Summary Home feed
// @Description The authenticated user's feed, or a landing payload for anonymous visitors
// @Tags warbles
// @Produce json
// @Success 200 {object} object{warbles=[]models.Warble}
// @Router / [get]
func (s *Server) Home(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if userID == 0 {
		return c.JSON(fiber.Map{
			"message": "Welcome to Warbler. Sign up or log in to see your feed.",
		})
	}

	warbles, err := s.warbleService.Feed(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"warbles": warbles})
}

// CreateWarble handles POST /messages/new
// @Summary Post a warble
// @Tags warbles
// @Accept json
// @Produce json
// @Param request body object{text=string} true "Warble text (1-140 characters)"
// @Success 201 {object} models.Warble
// @Failure 400 {object} models.ErrorResponse
// @Router /messages/new [post]
func (s *Server) CreateWarble(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	warble, err := s.warbleService.Post(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(warble)
}

// GetWarble handles GET /messages/:id
// @Summary Show a warble
// @Tags warbles
// @Produce json
// @Param id path int true "Warble ID"
// @Success 200 {object} models.Warble
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id} [get]
func (s *Server) GetWarble(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	warble, err := s.warbleService.Get(c.UserContext(), id, currentUserID(c))
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(warble)
}

// DeleteWarble handles POST /messages/:id/delete
// @Summary Delete a warble
// @Description Remove a warble; only the author may delete it
// @Tags warbles
// @Produce json
// @Param id path int true "Warble ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id}/delete [post]
func (s *Server) DeleteWarble(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.warbleService.Delete(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Warble deleted"})
}
