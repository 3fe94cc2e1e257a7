package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"agentpage_backend/internal/listing"
	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/utils/jwt"
)

// DashboardStats summarizes the agent's page for the dashboard header.
type DashboardStats struct {
	TotalListings  int64       `json:"total_listings"`
	ListingLimit   int         `json:"listing_limit"`
	TotalViews     int64       `json:"total_views"`
	UniqueViews    int64       `json:"unique_views"`
	WeeklyViews    int64       `json:"weekly_views"`
	TotalLeads     int64       `json:"total_leads"`
	UnreadLeads    int64       `json:"unread_leads"`
	DailyViewStats []DailyStat `json:"daily_views"`
}

type DailyStat struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// GetDashboardStats returns aggregate page and lead counters.
func GetDashboardStats(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	db := database.GetDB()

	profile, err := profileByUserID(claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	var stats DashboardStats
	stats.ListingLimit = listing.MaxListings

	db.Model(&model.Property{}).Where("profile_id = ?", profile.ID).Count(&stats.TotalListings)

	db.Model(&model.ProfileView{}).Where("profile_id = ?", profile.ID).Count(&stats.TotalViews)
	db.Model(&model.ProfileView{}).
		Where("profile_id = ? AND is_unique = ?", profile.ID, true).
		Count(&stats.UniqueViews)
	db.Model(&model.ProfileView{}).
		Where("profile_id = ? AND viewed_at >= ?", profile.ID, time.Now().AddDate(0, 0, -7)).
		Count(&stats.WeeklyViews)

	db.Model(&model.Lead{}).Where("profile_id = ?", profile.ID).Count(&stats.TotalLeads)
	db.Model(&model.Lead{}).
		Where("profile_id = ? AND read_status = ?", profile.ID, false).
		Count(&stats.UnreadLeads)

	// Last seven days, oldest first.
	for i := 6; i >= 0; i-- {
		day := time.Now().AddDate(0, 0, -i)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)

		var views int64
		db.Model(&model.ProfileView{}).
			Where("profile_id = ? AND viewed_at >= ? AND viewed_at < ?", profile.ID, start, end).
			Count(&views)

		stats.DailyViewStats = append(stats.DailyViewStats, DailyStat{
			Date:  start.Format("2006-01-02"),
			Views: views,
		})
	}

	return c.JSON(stats)
}
