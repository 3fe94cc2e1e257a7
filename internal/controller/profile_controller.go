package controller

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/cache"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/email"
	"agentpage_backend/pkg/utils/cloudflare"
	"agentpage_backend/pkg/utils/jwt"
	"agentpage_backend/pkg/utils/validation"
)

type ProfileCreateInput struct {
	FullName    string          `json:"full_name" validate:"required"`
	PhoneNumber string          `json:"phone_number" validate:"required"`
	Email       string          `json:"email"`
	Slug        string          `json:"slug"`
	Bio         string          `json:"bio"`
	Location    string          `json:"location"`
	AgentType   model.AgentType `json:"agent_type"`
	ReraID      string          `json:"rera_id"`
	WhatsApp    string          `json:"whatsapp_number"`
}

// ProfileUpdateInput uses pointers so absent fields stay untouched: the
// dashboard sends partial keystroke-level patches.
type ProfileUpdateInput struct {
	FullName       *string          `json:"full_name"`
	PhoneNumber    *string          `json:"phone_number"`
	Email          *string          `json:"email"`
	Slug           *string          `json:"slug"`
	Bio            *string          `json:"bio"`
	Location       *string          `json:"location"`
	AgentType      *model.AgentType `json:"agent_type"`
	ReraID         *string          `json:"rera_id"`
	WhatsApp       *string          `json:"whatsapp_number"`
	AvatarURL      *string          `json:"avatar_url"`
	AvatarPosition *int             `json:"avatar_position"`
	CoverPhotoURL  *string          `json:"cover_photo_url"`
	InstagramURL   *string          `json:"instagram_url"`
	FacebookURL    *string          `json:"facebook_url"`
	LinkedInURL    *string          `json:"linkedin_url"`
	TikTokURL      *string          `json:"tiktok_url"`
	YouTubeURL     *string          `json:"youtube_url"`
	WebsiteURL     *string          `json:"website_url"`
	Onboarded      *bool            `json:"onboarded"`
}

// profileByUserID loads the authenticated user's profile.
func profileByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	if err := database.GetDB().Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func fieldError(c *fiber.Ctx, status int, field, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"field": field,
	})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	return c.JSON(profile)
}

// CreateProfile creates the one profile a user gets, usually from the
// onboarding wizard's staging data.
func CreateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProfileCreateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if _, err := profileByUserID(claims.UserID); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Profile already exists",
		})
	}

	if ok, msg := validation.Phone(input.PhoneNumber); !ok {
		return fieldError(c, fiber.StatusBadRequest, "phone_number", msg)
	}

	slug := input.Slug
	if slug == "" {
		slug = validation.SlugFromName(input.FullName)
	}
	if ok, msg := validation.Slug(slug); !ok {
		return fieldError(c, fiber.StatusBadRequest, "slug", msg)
	}

	var count int64
	database.GetDB().Model(&model.Profile{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		return fieldError(c, fiber.StatusConflict, "slug", "This link is already taken")
	}

	agentType := input.AgentType
	if agentType == "" {
		agentType = model.AgentTypeIndependent
	}

	profile := model.Profile{
		UserID:         claims.UserID,
		Slug:           slug,
		FullName:       input.FullName,
		PhoneNumber:    input.PhoneNumber,
		Email:          input.Email,
		Bio:            truncate(input.Bio, model.MaxBioLength),
		Location:       input.Location,
		AgentType:      agentType,
		ReraID:         input.ReraID,
		WhatsAppNumber: input.WhatsApp,
		Onboarded:      true,
	}

	if err := database.GetDB().Create(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create profile",
		})
	}

	if email.GlobalEmailService != nil && profile.Email != "" {
		if err := email.GlobalEmailService.SendWelcomeEmail(profile.Email, profile.FullName); err != nil {
			log.Printf("Error sending welcome email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateProfile applies a partial update. Confirmed state comes back in the
// response so the client can reconcile its local copy.
func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProfileUpdateInput)

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

	updates := map[string]interface{}{}

	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.PhoneNumber != nil {
		if ok, msg := validation.Phone(*input.PhoneNumber); !ok {
			return fieldError(c, fiber.StatusBadRequest, "phone_number", msg)
		}
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.WhatsApp != nil {
		if *input.WhatsApp != "" {
			if ok, msg := validation.Phone(*input.WhatsApp); !ok {
				return fieldError(c, fiber.StatusBadRequest, "whatsapp_number", msg)
			}
		}
		updates["whatsapp_number"] = *input.WhatsApp
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Bio != nil {
		updates["bio"] = truncate(*input.Bio, model.MaxBioLength)
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.AgentType != nil {
		updates["agent_type"] = *input.AgentType
	}
	if input.ReraID != nil {
		updates["rera_id"] = *input.ReraID
	}
	if input.AvatarPosition != nil {
		pos := *input.AvatarPosition
		if pos < 0 {
			pos = 0
		}
		if pos > 100 {
			pos = 100
		}
		updates["avatar_position"] = pos
	}
	if input.AvatarURL != nil {
		if profile.AvatarURL != "" && profile.AvatarURL != *input.AvatarURL {
			if err := cloudflare.Delete(profile.AvatarURL); err != nil {
				log.Printf("Error deleting old avatar: %v", err)
			}
		}
		updates["avatar_url"] = *input.AvatarURL
	}
	if input.CoverPhotoURL != nil {
		if profile.CoverPhotoURL != "" && profile.CoverPhotoURL != *input.CoverPhotoURL {
			if err := cloudflare.Delete(profile.CoverPhotoURL); err != nil {
				log.Printf("Error deleting old cover photo: %v", err)
			}
		}
		updates["cover_photo_url"] = *input.CoverPhotoURL
	}
	if input.Onboarded != nil {
		updates["onboarded"] = *input.Onboarded
	}

	socials := map[string]*string{
		"instagram_url": input.InstagramURL,
		"facebook_url":  input.FacebookURL,
		"linkedin_url":  input.LinkedInURL,
		"tiktok_url":    input.TikTokURL,
		"youtube_url":   input.YouTubeURL,
		"website_url":   input.WebsiteURL,
	}
	for column, value := range socials {
		if value == nil {
			continue
		}
		if ok, msg := validation.URLField(*value); !ok {
			return fieldError(c, fiber.StatusBadRequest, column, msg)
		}
		updates[column] = *value
	}

	if input.Slug != nil && *input.Slug != profile.Slug {
		if ok, msg := validation.Slug(*input.Slug); !ok {
			return fieldError(c, fiber.StatusBadRequest, "slug", msg)
		}
		var count int64
		database.GetDB().Model(&model.Profile{}).
			Where("slug = ? AND id != ?", *input.Slug, profile.ID).Count(&count)
		if count > 0 {
			return fieldError(c, fiber.StatusConflict, "slug", "This link is already taken")
		}
		updates["slug"] = *input.Slug
	}

	oldSlug := profile.Slug
	if len(updates) > 0 {
		if err := database.GetDB().Model(profile).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not update profile",
			})
		}
	}

	cache.InvalidatePublicProfile(context.Background(), oldSlug)
	if profile.Slug != oldSlug {
		cache.InvalidatePublicProfile(context.Background(), profile.Slug)
	}

	return c.JSON(profile)
}

// truncate caps s at max characters, not bytes, so multi-byte text is
// never cut mid-rune.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
