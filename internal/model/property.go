package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Listing Types
type ListingType string

const (
	ListingTypeRent ListingType = "rent"
	ListingTypeSale ListingType = "sale"
)

// Property Categories
type PropertyCategory string

const (
	CategoryApartment PropertyCategory = "apartment"
	CategoryVilla     PropertyCategory = "villa"
	CategoryTownhouse PropertyCategory = "townhouse"
	CategoryPenthouse PropertyCategory = "penthouse"
	CategoryStudio    PropertyCategory = "studio"
	CategoryOffice    PropertyCategory = "office"
)

const MaxDescriptionLength = 120

// ImageList is the persisted image slot array: at most five opaque storage
// refs, newest first.
type ImageList = datatypes.JSONSlice[string]

// Property is one listing on an agent's page. Display order is a strict
// total order within a profile; images hold at most five opaque storage refs,
// newest first.
type Property struct {
	gorm.Model
	ProfileID uint `json:"profile_id" gorm:"index;not null"`

	Type     ListingType      `json:"type" gorm:"default:'sale'"`
	Category PropertyCategory `json:"category"`

	Price       string `json:"price"` // digits only, empty means "price on request"
	Location    string `json:"location"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	Area        string `json:"area"` // e.g. "1200 sq ft"
	Description string `json:"description" gorm:"size:120"`

	Images       ImageList `json:"images"`
	DisplayOrder int       `json:"display_order" gorm:"index;default:0"`

	// Set on freshly added entries so the dashboard opens them for editing.
	// Never persisted.
	Expanded bool `json:"expanded,omitempty" gorm:"-"`

	// Relations
	Profile Profile `json:"-" gorm:"foreignKey:ProfileID"`
}

// ValidCategory reports whether c is one of the fixed categories. Empty is
// allowed while a new entry is still being filled in.
func ValidCategory(c PropertyCategory) bool {
	switch c {
	case "", CategoryApartment, CategoryVilla, CategoryTownhouse,
		CategoryPenthouse, CategoryStudio, CategoryOffice:
		return true
	}
	return false
}

// ValidListingType reports whether t is rent or sale.
func ValidListingType(t ListingType) bool {
	return t == ListingTypeRent || t == ListingTypeSale
}
