package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead is a viewing request submitted from the public profile page.
type Lead struct {
	gorm.Model
	ProfileID  uint  `json:"profile_id" gorm:"index;not null"`
	PropertyID *uint `json:"property_id" gorm:"index"` // set when the request targets one listing

	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Message       string `json:"message" gorm:"type:text"`
	PreferredTime string `json:"preferred_time"`

	Status      string     `json:"status" gorm:"default:'new'"` // new, contacted, closed
	ReadStatus  bool       `json:"read_status" gorm:"default:false"`
	ContactedAt *time.Time `json:"contacted_at"`

	// Relations
	Profile  Profile   `json:"-" gorm:"foreignKey:ProfileID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
