package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/editor"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/jwt"
	"agentpage_backend/pkg/utils/validation"
)

// editorHub debounces keystroke-level text edits so the storage layer sees
// one write per quiet field instead of one per keystroke. Structural
// operations never go through here; they write through immediately.
var editorHub = editor.New(editor.DefaultDelay)

type AutosaveInput struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Free-text columns eligible for debounced persistence, per entity. Anything
// else must use the regular PATCH endpoints.
var profileTextFields = map[string]bool{
	"full_name": true,
	"bio":       true,
	"location":  true,
	"rera_id":   true,
}

var propertyTextFields = map[string]bool{
	"price":       true,
	"location":    true,
	"area":        true,
	"description": true,
}

func commitColumn(table string, id uint, column, slug string) editor.CommitFunc {
	return func(ctx context.Context, value string) error {
		err := database.GetDB().WithContext(ctx).
			Table(table).
			Where("id = ?", id).
			Update(column, value).Error
		if err != nil {
			return err
		}
		cache.InvalidatePublicProfile(ctx, slug)
		return nil
	}
}

// AutosaveProfileField accepts one keystroke-level profile edit. The value
// is acknowledged immediately and committed after the quiet window.
func AutosaveProfileField(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(AutosaveInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !profileTextFields[input.Field] {
		return fieldError(c, fiber.StatusBadRequest, input.Field, "Field does not support autosave")
	}

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	value := input.Value
	if input.Field == "bio" {
		value = truncate(value, model.MaxBioLength)
	}

	key := editor.Key("profile", profile.ID, input.Field)
	editorHub.Edit(key, value, commitColumn("profiles", profile.ID, input.Field, profile.Slug))

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"state": editorHub.State(key).String(),
	})
}

// AutosavePropertyField accepts one keystroke-level listing edit.
func AutosavePropertyField(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)
	input := new(AutosaveInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if !propertyTextFields[input.Field] {
		return fieldError(c, fiber.StatusBadRequest, input.Field, "Field does not support autosave")
	}

	value := input.Value
	switch input.Field {
	case "price":
		value = validation.NormalizePrice(value)
	case "description":
		value = truncate(value, model.MaxDescriptionLength)
	}

	key := editor.Key("property", property.ID, input.Field)
	editorHub.Edit(key, value, commitColumn("properties", property.ID, input.Field, property.Profile.Slug))

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"state": editorHub.State(key).String(),
	})
}

type FlushInput struct {
	Entity string `json:"entity"` // profile or property
	ID     uint   `json:"id"`
}

// FlushAutosave commits every dirty field of one entity immediately. The
// dashboard calls it when an editor unmounts so pending edits are not lost.
func FlushAutosave(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(FlushInput)

	if err := c.BodyParser(input); err != nil {
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

	switch input.Entity {
	case "profile":
		input.ID = profile.ID
	case "property":
		var property model.Property
		if err := database.GetDB().
			Where("id = ? AND profile_id = ?", input.ID, profile.ID).
			First(&property).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Entity must be profile or property",
		})
	}

	prefix := editor.Key(input.Entity, input.ID, "")
	if err := editorHub.FlushAll(c.Context(), prefix); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not flush pending edits",
		})
	}

	return c.JSON(fiber.Map{"message": "Pending edits committed"})
}
