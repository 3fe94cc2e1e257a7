package controller

import (
	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/ai"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/jwt"
)

type GenerateBioInput struct {
	Name      string          `json:"name" validate:"required"`
	Location  string          `json:"location"`
	AgentType model.AgentType `json:"agent_type"`
}

// GenerateBio writes a bio suggestion. Single attempt; a provider failure
// goes straight back to the user.
func GenerateBio(c *fiber.Ctx) error {
	if !ai.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Text generation is not available",
		})
	}

	input := new(GenerateBioInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Name == "" {
		return fieldError(c, fiber.StatusBadRequest, "name", "Name is required")
	}

	bio, err := ai.GenerateBio(c.Context(), input.Name, input.Location, input.AgentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate bio",
		})
	}

	return c.JSON(fiber.Map{"bio": bio})
}

// GenerateDescription writes a description suggestion for one of the
// caller's listings.
func GenerateDescription(c *fiber.Ctx) error {
	if !ai.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Text generation is not available",
		})
	}

	claims := c.Locals("user").(*jwt.Claims)

	input := struct {
		PropertyID uint `json:"property_id"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	var property model.Property
	if err := database.GetDB().
		Where("id = ? AND profile_id = ?", input.PropertyID, profile.ID).
		First(&property).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	description, err := ai.GenerateDescription(c.Context(), &property)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate description",
		})
	}

	return c.JSON(fiber.Map{"description": description})
}
