package controller

import (
	"context"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/listing"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/cloudflare"
	"agentpage_backend/pkg/utils/image"
	"agentpage_backend/pkg/utils/validation"
)

func saveImages(property *model.Property, images []string) error {
	return database.GetDB().Model(property).
		Update("images", model.ImageList(images)).Error
}

// AddPropertyImage uploads one photo into the newest slot of the listing.
// Ownership and the five-slot cap were checked by the middleware chain.
func AddPropertyImage(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ref, err := cloudflare.Upload(cloudflare.UploadConfig{
		ProfileSlug: property.Profile.Slug,
		Kind:        "listings",
		Filename:    file.Filename,
		Body:        buf,
		ContentType: contentType,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	images, err := listing.InsertImage(property.Images, ref)
	if err != nil {
		// Slot taken between the middleware check and now; clean up the
		// orphaned object.
		if delErr := cloudflare.Delete(ref); delErr != nil {
			log.Printf("Error deleting orphaned image: %v", delErr)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":     "Maximum image limit reached",
			"max_limit": listing.MaxImages,
		})
	}

	if err := saveImages(property, images); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save image record",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"images":  images,
	})
}

// RemovePropertyImage drops the slot at :index; later slots shift left.
func RemovePropertyImage(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil || index < 0 || index >= len(property.Images) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image index",
		})
	}

	removed := property.Images[index]
	images := listing.RemoveImage(property.Images, index)

	if err := saveImages(property, images); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update images",
		})
	}

	if err := cloudflare.Delete(removed); err != nil {
		log.Printf("Error deleting image object: %v", err)
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.JSON(fiber.Map{
		"message": "Image removed",
		"images":  images,
	})
}

// SwapPropertyImage exchanges the slot at :index with its neighbor. Boundary
// swaps change nothing and still return the current list.
func SwapPropertyImage(c *fiber.Ctx) error {
	property := c.Locals("property").(*model.Property)

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image index",
		})
	}

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

	images := listing.SwapImage(property.Images, index, dir)

	if err := saveImages(property, images); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update images",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), property.Profile.Slug)

	return c.JSON(fiber.Map{
		"message": "Images reordered",
		"images":  images,
	})
}
