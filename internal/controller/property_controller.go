package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/listing"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/jwt"
	"agentpage_backend/pkg/utils/validation"
)

// PropertyUpdateInput carries a partial field update. Pointers distinguish
// "not sent" from zero values.
type PropertyUpdateInput struct {
	Type        *model.ListingType      `json:"type"`
	Category    *model.PropertyCategory `json:"category"`
	Price       *string                 `json:"price"`
	Location    *string                 `json:"location"`
	Bedrooms    *int                    `json:"bedrooms"`
	Bathrooms   *int                    `json:"bathrooms"`
	Area        *string                 `json:"area"`
	Description *string                 `json:"description"`
}

type ReorderInput struct {
	PropertyIDs []uint `json:"property_ids"`
}

type MoveInput struct {
	Direction string `json:"direction"` // up or down
}

// loadCollection returns the profile's listings in display order.
func loadCollection(profileID uint) ([]model.Property, error) {
	var properties []model.Property
	err := database.GetDB().
		Where("profile_id = ?", profileID).
		Order("display_order ASC, id ASC").
		Find(&properties).Error
	return properties, err
}

// persistOrder writes the display order of every listing in one transaction.
// Structural changes are written through immediately, unlike text edits.
func persistOrder(items []model.Property) error {
	tx := database.GetDB().Begin()
	for _, it := range items {
		if err := tx.Model(&model.Property{}).
			Where("id = ?", it.ID).
			Update("display_order", it.DisplayOrder).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// ListMyProperties returns the authenticated user's listings.
func ListMyProperties(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	properties, err := loadCollection(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(properties)
}

// CreateProperty appends a default-valued listing, returned expanded so the
// dashboard opens it for editing. The listing cap is enforced both by the
// middleware and here; a request racing past the middleware still fails.
func CreateProperty(c *fiber.Ctx) error {
	profile := c.Locals("profile").(*model.Profile)

	items, err := loadCollection(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	fresh := model.Property{
		ProfileID: profile.ID,
		Type:      model.ListingTypeSale,
	}

	items, err = listing.Add(items, fresh)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":     "You have reached your listing limit",
			"max_limit": listing.MaxListings,
		})
	}

	created := &items[len(items)-1]
	if err := database.GetDB().Create(created).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), profile.Slug)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateProperty applies a partial field update to one listing. Ownership
// was checked by the middleware.
func UpdateProperty(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)
	input := new(PropertyUpdateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{}

	if input.Type != nil {
		if !model.ValidListingType(*input.Type) {
			return fieldError(c, fiber.StatusBadRequest, "type", "Listing type must be rent or sale")
		}
		updates["type"] = *input.Type
	}
	if input.Category != nil {
		if !model.ValidCategory(*input.Category) {
			return fieldError(c, fiber.StatusBadRequest, "category", "Unknown property category")
		}
		updates["category"] = *input.Category
	}
	if input.Price != nil {
		// Stored digits-only; empty means "price on request".
		updates["price"] = validation.NormalizePrice(*input.Price)
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Bedrooms != nil {
		updates["bedrooms"] = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		updates["bathrooms"] = *input.Bathrooms
	}
	if input.Area != nil {
		updates["area"] = *input.Area
	}
	if input.Description != nil {
		updates["description"] = truncate(*input.Description, model.MaxDescriptionLength)
	}

	if len(updates) > 0 {
		if err := database.GetDB().Model(property).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update property",
			})
		}
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.JSON(property)
}

// DuplicateProperty clones a listing into a genuinely new entry placed at
// the front of the collection.
func DuplicateProperty(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)

	items, err := loadCollection(property.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	items, clone, err := listing.Duplicate(items, property.ID)
	if err == listing.ErrLimitExceeded {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":     "You have reached your listing limit",
			"max_limit": listing.MaxListings,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	tx := database.GetDB().Begin()
	if err := tx.Create(clone).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not duplicate property",
		})
	}
	for _, it := range items[1:] {
		if err := tx.Model(&model.Property{}).
			Where("id = ?", it.ID).
			Update("display_order", it.DisplayOrder).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not duplicate property",
			})
		}
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete duplication",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.Status(fiber.StatusCreated).JSON(clone)
}

// DeleteProperty removes a listing and renumbers the rest. Deleting an
// already-deleted listing is handled by the ownership middleware's 404.
func DeleteProperty(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)

	items, err := loadCollection(property.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}
	items = listing.Remove(items, property.ID)

	tx := database.GetDB().Begin()
	if err := tx.Delete(property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}
	for _, it := range items {
		if err := tx.Model(&model.Property{}).
			Where("id = ?", it.ID).
			Update("display_order", it.DisplayOrder).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not delete property",
			})
		}
	}
	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete deletion",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.SendStatus(fiber.StatusNoContent)
}

// MoveProperty swaps a listing with its neighbor. Boundary moves are
// accepted and change nothing.
func MoveProperty(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)
	input := new(MoveInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	dir := listing.Direction(input.Direction)
	if dir != listing.DirUp && dir != listing.DirDown {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Direction must be up or down",
		})
	}

	items, err := loadCollection(property.ProfileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	items = listing.Move(items, property.ID, dir)
	if err := persistOrder(items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not reorder properties",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.JSON(items)
}

// ReorderProperties applies a full permutation of the profile's listing ids.
// Anything short of an exact permutation is rejected outright.
func ReorderProperties(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ReorderInput)

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

	items, err := loadCollection(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	items, err = listing.Reorder(items, input.PropertyIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Property IDs must be a permutation of your current listings",
		})
	}

	if err := persistOrder(items); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not reorder properties",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), profile.Slug)

	return c.JSON(items)
}
