package controller

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/cloudflare"
	"agentpage_backend/pkg/utils/image"
	"agentpage_backend/pkg/utils/jwt"
	"agentpage_backend/pkg/utils/validation"
)

// uploadProfileAsset handles avatar and cover photo uploads: validate,
// re-encode, store, replace the old object, persist the new ref.
func uploadProfileAsset(c *fiber.Ctx, formField, kind, column string) error {
	claims := c.Locals("user").(*jwt.Claims)

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	file, err := c.FormFile(formField)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
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
		ProfileSlug: profile.Slug,
		Kind:        kind,
		Filename:    file.Filename,
		Body:        buf,
		ContentType: contentType,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload image",
		})
	}

	old := profile.AvatarURL
	if column == "cover_photo_url" {
		old = profile.CoverPhotoURL
	}
	if old != "" {
		if err := cloudflare.Delete(old); err != nil {
			log.Printf("Error deleting old %s: %v", kind, err)
		}
	}

	if err := database.GetDB().Model(profile).Update(column, ref).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	cache.InvalidatePublicProfile(context.Background(), profile.Slug)

	return c.JSON(fiber.Map{
		"message": "Upload successful",
		"url":     ref,
	})
}

func UploadAvatar(c *fiber.Ctx) error {
	return uploadProfileAsset(c, "avatar", "avatar", "avatar_url")
}

func UploadCoverPhoto(c *fiber.Ctx) error {
	return uploadProfileAsset(c, "cover", "cover", "cover_photo_url")
}
