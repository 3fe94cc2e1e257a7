package middleware

import (
	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/listing"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/jwt"
)

// CheckPropertyOwnership verifies that the listing in :id belongs to the
// authenticated user's profile.
func CheckPropertyOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		propertyID := c.Params("id")

		var property model.Property
		if err := database.DB.Preload("Profile").First(&property, propertyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}

		if property.Profile.UserID != claims.UserID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this property",
			})
		}

		c.Locals("property", &property)
		return c.Next()
	}
}

// CheckListingLimit aborts the request when the profile already holds the
// maximum number of listings.
func CheckListingLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		var profile model.Profile
		if err := database.DB.Where("user_id = ?", claims.UserID).First(&profile).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}

		var count int64
		database.DB.Model(&model.Property{}).Where("profile_id = ?", profile.ID).Count(&count)

		if int(count) >= listing.MaxListings {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "You have reached your listing limit",
				"current_count": count,
				"max_limit":     listing.MaxListings,
			})
		}

		c.Locals("profile", &profile)
		return c.Next()
	}
}

// CheckImageLimit aborts the upload when all image slots of the listing are
// taken. Runs after CheckPropertyOwnership.
func CheckImageLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		property := c.Locals("property").(*model.Property)

		if len(property.Images) >= listing.MaxImages {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":     "Maximum image limit reached",
				"max_limit": listing.MaxImages,
			})
		}

		return c.Next()
	}
}
