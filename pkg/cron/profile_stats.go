// pkg/cron/profile_stats.go
package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"agentpage_backend/internal/model"
	"agentpage_backend/pkg/database"
	"agentpage_backend/pkg/email"
)

type profileWeekStats struct {
	ProfileID   uint
	AgentEmail  string
	FullName    string
	TotalViews  int64
	UniqueViews int64
	LeadCount   int64
}

// InitProfileStatsCron schedules the weekly page stats rollup and summary
// email, every Sunday at 20:00.
func InitProfileStatsCron(emailService *email.EmailService) {
	c := cron.New()

	_, err := c.AddFunc("0 20 * * 0", func() {
		rollupWeeklyStats()
		sendWeeklyStats(emailService)
	})
	if err != nil {
		log.Printf("Could not initialize profile stats cron: %v", err)
		return
	}

	c.Start()
}

// rollupWeeklyStats refreshes the per-profile counters from the raw view log.
func rollupWeeklyStats() {
	db := database.GetDB()
	weekAgo := time.Now().AddDate(0, 0, -7)

	var profiles []model.Profile
	if err := db.Find(&profiles).Error; err != nil {
		log.Printf("Error loading profiles for stats rollup: %v", err)
		return
	}

	for _, p := range profiles {
		var total, unique, weekly int64
		db.Model(&model.ProfileView{}).Where("profile_id = ?", p.ID).Count(&total)
		db.Model(&model.ProfileView{}).Where("profile_id = ? AND is_unique = ?", p.ID, true).Count(&unique)
		db.Model(&model.ProfileView{}).Where("profile_id = ? AND viewed_at >= ?", p.ID, weekAgo).Count(&weekly)

		stats := model.ProfileStats{ProfileID: p.ID}
		db.Where(model.ProfileStats{ProfileID: p.ID}).FirstOrCreate(&stats)
		db.Model(&stats).Updates(map[string]interface{}{
			"total_views":  total,
			"unique_views": unique,
			"weekly_views": weekly,
			"last_updated": time.Now(),
		})
	}
}

func sendWeeklyStats(emailService *email.EmailService) {
	startDate := time.Now().AddDate(0, 0, -7)

	var stats []profileWeekStats
	err := database.GetDB().Raw(`
        SELECT
            pr.id as profile_id,
            u.email as agent_email,
            pr.full_name,
            COUNT(pv.id) as total_views,
            COUNT(DISTINCT pv.ip) as unique_views,
            (
                SELECT COUNT(l.id)
                FROM leads l
                WHERE l.profile_id = pr.id AND l.created_at >= ?
            ) as lead_count
        FROM profiles pr
        JOIN users u ON u.id = pr.user_id
        LEFT JOIN profile_views pv ON pr.id = pv.profile_id AND pv.viewed_at >= ?
        GROUP BY pr.id, u.email, pr.full_name
        HAVING COUNT(pv.id) > 0
    `, startDate, startDate).Scan(&stats).Error

	if err != nil {
		log.Printf("Error fetching weekly profile stats: %v", err)
		return
	}

	for _, stat := range stats {
		err := emailService.SendWeeklyStatsEmail(stat.AgentEmail, email.WeeklyStatsData{
			FullName:    stat.FullName,
			TotalViews:  stat.TotalViews,
			UniqueViews: stat.UniqueViews,
			LeadCount:   stat.LeadCount,
			StartDate:   startDate,
		})
		if err != nil {
			log.Printf("Error sending weekly stats to %s: %v", stat.AgentEmail, err)
		}
	}
}
