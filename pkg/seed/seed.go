package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agentpage_backend/internal/model"
)

// SeedDemoProfile creates a demo agent with a few listings for local
// bring-up. Safe to run repeatedly.
func SeedDemoProfile(db *gorm.DB) {
	var existing model.User
	if err := db.Where("email = ?", "demo@agentpage.io").First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing demo password: %v", err)
		return
	}

	user := model.User{
		Email:    "demo@agentpage.io",
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Error creating demo user: %v", err)
		return
	}

	profile := model.Profile{
		UserID:      user.ID,
		Slug:        "ahmed-ali",
		FullName:    "Ahmed Ali",
		PhoneNumber: "+971 50 123 4567",
		Email:       "demo@agentpage.io",
		Bio:         "Helping families find their dream homes in Dubai for over a decade.",
		Location:    "Dubai Marina",
		AgentType:   model.AgentTypeIndependent,
		ReraID:      "12345",
		Onboarded:   true,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Printf("Error creating demo profile: %v", err)
		return
	}

	listings := []model.Property{
		{
			ProfileID:    profile.ID,
			Type:         model.ListingTypeSale,
			Category:     model.CategoryApartment,
			Price:        "1500000",
			Location:     "Dubai Marina",
			Bedrooms:     2,
			Bathrooms:    2,
			Area:         "1200",
			Description:  "Bright 2BR with full marina view, steps from the promenade.",
			DisplayOrder: 0,
		},
		{
			ProfileID:    profile.ID,
			Type:         model.ListingTypeRent,
			Category:     model.CategoryVilla,
			Price:        "240000",
			Location:     "Arabian Ranches",
			Bedrooms:     4,
			Bathrooms:    5,
			Area:         "3400",
			Description:  "Family villa on a quiet street with private garden and pool.",
			DisplayOrder: 1,
		},
	}

	for _, l := range listings {
		if err := db.Create(&l).Error; err != nil {
			log.Printf("Error creating demo listing: %v", err)
		}
	}

	log.Println("Demo profile seeded successfully!")
}
