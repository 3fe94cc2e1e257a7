package model

import (
	"fmt"

	gosimple "github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Agent Types
type AgentType string

const (
	AgentTypeIndependent AgentType = "independent"
	AgentTypeAgency      AgentType = "agency"
)

const MaxBioLength = 120

// Profile is the public business card of an agent. One per user.
type Profile struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Slug   string `json:"slug" gorm:"uniqueIndex;not null"`

	FullName    string `json:"full_name" gorm:"not null"`
	PhoneNumber string `json:"phone_number" gorm:"not null"`
	Email       string `json:"email"`
	Bio         string `json:"bio" gorm:"size:120"`
	Location    string `json:"location"`

	AgentType AgentType `json:"agent_type" gorm:"default:'independent'"`
	ReraID    string    `json:"rera_id"`

	AvatarURL      string `json:"avatar_url"`
	AvatarPosition int    `json:"avatar_position" gorm:"default:50"` // vertical crop 0-100
	CoverPhotoURL  string `json:"cover_photo_url"`

	WhatsAppNumber string `json:"whatsapp_number" gorm:"column:whatsapp_number"`

	// Social links, all optional
	InstagramURL string `json:"instagram_url"`
	FacebookURL  string `json:"facebook_url"`
	LinkedInURL  string `json:"linkedin_url" gorm:"column:linkedin_url"`
	TikTokURL    string `json:"tiktok_url" gorm:"column:tiktok_url"`
	YouTubeURL   string `json:"youtube_url" gorm:"column:youtube_url"`
	WebsiteURL   string `json:"website_url"`

	Onboarded bool `json:"onboarded" gorm:"default:false"`

	// Relations
	User       User       `json:"-" gorm:"foreignKey:UserID"`
	Properties []Property `json:"-" gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// ContactNumber returns the number used for WhatsApp deep links. The
// dedicated WhatsApp number wins over the phone number when both are set.
func (p *Profile) ContactNumber() string {
	if p.WhatsAppNumber != "" {
		return p.WhatsAppNumber
	}
	return p.PhoneNumber
}

// BeforeCreate derives the slug from the full name when none was given and
// makes sure it is unique.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = gosimple.Make(p.FullName)
	}

	var count int64
	tx.Model(&Profile{}).Where("slug = ?", p.Slug).Count(&count)
	if count > 0 {
		p.Slug = fmt.Sprintf("%s-%d", p.Slug, p.UserID)
	}

	return nil
}
