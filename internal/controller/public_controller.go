package controller

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/validation"
)

// waLink builds a WhatsApp deep link with a prefilled message.
func waLink(number, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

func priceDisplay(p *model.Property) string {
	formatted := validation.FormatPrice(p.Price)
	if formatted == "" {
		return "Price on request"
	}
	if p.Type == model.ListingTypeRent {
		return fmt.Sprintf("AED %s/year", formatted)
	}
	return fmt.Sprintf("AED %s", formatted)
}

func publicListing(profile *model.Profile, p *model.Property) fiber.Map {
	message := fmt.Sprintf("Hi %s, I'm interested in your listing in %s.", profile.FullName, p.Location)

	return fiber.Map{
		"id":            p.ID,
		"type":          p.Type,
		"category":      p.Category,
		"price":         p.Price,
		"price_display": priceDisplay(p),
		"location":      p.Location,
		"bedrooms":      p.Bedrooms,
		"bathrooms":     p.Bathrooms,
		"area":          p.Area,
		"description":   p.Description,
		"images":        p.Images,
		"display_order": p.DisplayOrder,
		"whatsapp_link": waLink(profile.ContactNumber(), message),
	}
}

// GetPublicProfile resolves a slug to the read-only (profile, listings)
// pair the public page renders. Slug match is case-sensitive and exact.
func GetPublicProfile(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if data, ok := cache.GetPublicProfile(c.Context(), slug); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	}

	var profile model.Profile
	if err := database.GetDB().Where("slug = ?", slug).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch profile",
		})
	}

	properties, err := loadCollection(profile.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	listings := make([]fiber.Map, 0, len(properties))
	for i := range properties {
		listings = append(listings, publicListing(&profile, &properties[i]))
	}

	greeting := fmt.Sprintf("Hi %s, I found your page and would like to get in touch.", profile.FullName)

	payload := fiber.Map{
		"profile": fiber.Map{
			"slug":            profile.Slug,
			"full_name":       profile.FullName,
			"phone_number":    profile.PhoneNumber,
			"email":           profile.Email,
			"bio":             profile.Bio,
			"location":        profile.Location,
			"agent_type":      profile.AgentType,
			"rera_id":         profile.ReraID,
			"avatar_url":      profile.AvatarURL,
			"avatar_position": profile.AvatarPosition,
			"cover_photo_url": profile.CoverPhotoURL,
			"whatsapp_link":   waLink(profile.ContactNumber(), greeting),
			"instagram_url":   profile.InstagramURL,
			"facebook_url":    profile.FacebookURL,
			"linkedin_url":    profile.LinkedInURL,
			"tiktok_url":      profile.TikTokURL,
			"youtube_url":     profile.YouTubeURL,
			"website_url":     profile.WebsiteURL,
		},
		"properties": listings,
	}

	body, err := json.Marshal(payload)
	if err == nil {
		cache.SetPublicProfile(c.Context(), slug, body)
	}

	return c.JSON(payload)
}

// RecordProfileView logs a public page view. Repeat views from the same IP
// within 24 hours count as non-unique.
func RecordProfileView(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var profile model.Profile
	if err := database.GetDB().Where("slug = ?", slug).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	view := model.ProfileView{
		ProfileID: profile.ID,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		ViewedAt:  time.Now(),
	}

	if err := database.GetDB().Create(&view).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not record view",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
