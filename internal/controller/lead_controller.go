package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/email"
	"agentpage_backend/pkg/utils/jwt"
	"agentpage_backend/pkg/utils/validation"
)

type LeadInput struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Message       string `json:"message"`
	PreferredTime string `json:"preferred_time"`
	PropertyID    *uint  `json:"property_id"`
}

// CreateLead records a viewing request from the public page and notifies
// the agent by email.
func CreateLead(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var profile model.Profile
	if err := database.GetDB().Preload("User").Where("slug = ?", slug).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" {
		return fieldError(c, fiber.StatusBadRequest, "name", "Name is required")
	}
	if ok, msg := validation.Phone(input.Phone); !ok {
		return fieldError(c, fiber.StatusBadRequest, "phone", msg)
	}

	var propertyTitle string
	if input.PropertyID != nil {
		var property model.Property
		if err := database.GetDB().
			Where("id = ? AND profile_id = ?", *input.PropertyID, profile.ID).
			First(&property).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		propertyTitle = fmt.Sprintf("%s in %s", property.Category, property.Location)
	}

	lead := model.Lead{
		ProfileID:     profile.ID,
		PropertyID:    input.PropertyID,
		Name:          input.Name,
		Phone:         input.Phone,
		Message:       input.Message,
		PreferredTime: input.PreferredTime,
		Status:        "new",
	}

	if err := database.GetDB().Create(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lead",
		})
	}

	if email.GlobalEmailService != nil && profile.User.Email != "" {
		err := email.GlobalEmailService.SendLeadNotificationEmail(profile.User.Email, email.LeadNotificationData{
			LeadName:      input.Name,
			LeadPhone:     input.Phone,
			LeadMessage:   input.Message,
			PreferredTime: input.PreferredTime,
			PropertyTitle: propertyTitle,
		})
		if err != nil {
			log.Printf("Could not send lead notification email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your request has been sent. The agent will contact you soon.",
	})
}

func GetMyLeads(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	var leads []model.Lead
	query := database.GetDB().
		Where("profile_id = ?", profile.ID).
		Preload("Property")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if readStatus := c.Query("read"); readStatus != "" {
		query = query.Where("read_status = ?", readStatus == "true")
	}

	if err := query.Order("created_at desc").Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leads",
		})
	}

	return c.JSON(leads)
}

// leadForUser loads a lead and checks it belongs to the caller's profile.
func leadForUser(c *fiber.Ctx) (*model.Lead, error) {
	claims := c.Locals("user").(*jwt.Claims)

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	var lead model.Lead
	if err := database.GetDB().First(&lead, c.Params("id")).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	if lead.ProfileID != profile.ID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this lead",
		})
	}

	return &lead, nil
}

func UpdateLeadStatus(c *fiber.Ctx) error {
	lead, err := leadForUser(c)
	if lead == nil {
		return err
	}

	input := struct {
		Status string `json:"status"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	switch input.Status {
	case "new", "contacted", "closed":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":          "Invalid status value",
			"valid_statuses": []string{"new", "contacted", "closed"},
		})
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == "contacted" && lead.ContactedAt == nil {
		now := time.Now()
		updates["contacted_at"] = &now
	}

	if err := database.GetDB().Model(lead).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    lead,
	})
}

func MarkLeadAsRead(c *fiber.Ctx) error {
	lead, err := leadForUser(c)
	if lead == nil {
		return err
	}

	if err := database.GetDB().Model(lead).Update("read_status", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead marked as read",
		"lead":    lead,
	})
}
