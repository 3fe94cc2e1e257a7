package model

import (
	"time"

	"gorm.io/gorm"
)

// ProfileView is a single public page view.
type ProfileView struct {
	gorm.Model
	ProfileID uint      `json:"profile_id" gorm:"index"`
	IP        string    `json:"ip" gorm:"index"`
	UserAgent string    `json:"user_agent"`
	ViewedAt  time.Time `json:"viewed_at" gorm:"index"`
	IsUnique  bool      `json:"is_unique"`

	// Relations
	Profile Profile `json:"-" gorm:"foreignKey:ProfileID"`
}

// ProfileStats holds rolled-up view counters per profile.
type ProfileStats struct {
	gorm.Model
	ProfileID   uint      `json:"profile_id" gorm:"uniqueIndex"`
	TotalViews  int64     `json:"total_views"`
	UniqueViews int64     `json:"unique_views"`
	WeeklyViews int64     `json:"weekly_views"`
	LastUpdated time.Time `json:"last_updated"`

	// Relations
	Profile Profile `json:"-" gorm:"foreignKey:ProfileID"`
}

// BeforeCreate stamps the view and marks it non-unique when the same IP
// viewed the profile within the last 24 hours.
func (pv *ProfileView) BeforeCreate(tx *gorm.DB) error {
	if pv.ViewedAt.IsZero() {
		pv.ViewedAt = time.Now()
	}
	pv.IsUnique = true

	var count int64
	tx.Model(&ProfileView{}).
		Where("profile_id = ? AND ip = ? AND viewed_at > ?",
			pv.ProfileID,
			pv.IP,
			time.Now().Add(-24*time.Hour)).
		Count(&count)

	if count > 0 {
		pv.IsUnique = false
	}

	return nil
}
