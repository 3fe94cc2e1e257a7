package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&User{}, &Profile{}, &Property{}, &Lead{}, &ProfileView{}, &ProfileStats{}))
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *User {
	t.Helper()
	user := &User{Email: email, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestProfileSlugFromFullName(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "ahmed@example.com")

	profile := &Profile{UserID: user.ID, FullName: "Ahmed Al Mansoori", PhoneNumber: "+971501234567"}
	require.NoError(t, db.Create(profile).Error)
	assert.Equal(t, "ahmed-al-mansoori", profile.Slug)
}

func TestProfileSlugCollisionGetsSuffix(t *testing.T) {
	db := testDB(t)
	first := createUser(t, db, "one@example.com")
	second := createUser(t, db, "two@example.com")

	p1 := &Profile{UserID: first.ID, FullName: "Ahmed Ali", PhoneNumber: "+971501234567"}
	require.NoError(t, db.Create(p1).Error)

	p2 := &Profile{UserID: second.ID, FullName: "Ahmed Ali", PhoneNumber: "+971509876543"}
	require.NoError(t, db.Create(p2).Error)

	assert.Equal(t, "ahmed-ali", p1.Slug)
	assert.Equal(t, "ahmed-ali-2", p2.Slug)
}

func TestProfileContactNumber(t *testing.T) {
	p := Profile{PhoneNumber: "+971501111111"}
	assert.Equal(t, "+971501111111", p.ContactNumber())

	p.WhatsAppNumber = "+971502222222"
	assert.Equal(t, "+971502222222", p.ContactNumber())
}

func TestPropertyImagesRoundTrip(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "agent@example.com")
	profile := &Profile{UserID: user.ID, FullName: "Agent Smith", PhoneNumber: "+971501234567"}
	require.NoError(t, db.Create(profile).Error)

	property := &Property{
		ProfileID: profile.ID,
		Type:      ListingTypeSale,
		Category:  CategoryApartment,
		Price:     "1500000",
		Images:    ImageList{"https://cdn.agentpage.io/a.webp", "https://cdn.agentpage.io/b.webp"},
	}
	require.NoError(t, db.Create(property).Error)

	var loaded Property
	require.NoError(t, db.First(&loaded, property.ID).Error)
	assert.Equal(t, ImageList{"https://cdn.agentpage.io/a.webp", "https://cdn.agentpage.io/b.webp"}, loaded.Images)
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(""))
	assert.True(t, ValidCategory(CategoryVilla))
	assert.True(t, ValidCategory(CategoryStudio))
	assert.False(t, ValidCategory("castle"))
}

func TestValidListingType(t *testing.T) {
	assert.True(t, ValidListingType(ListingTypeRent))
	assert.True(t, ValidListingType(ListingTypeSale))
	assert.False(t, ValidListingType("lease"))
}

func TestProfileViewUniqueWithin24Hours(t *testing.T) {
	db := testDB(t)
	user := createUser(t, db, "agent@example.com")
	profile := &Profile{UserID: user.ID, FullName: "Agent Smith", PhoneNumber: "+971501234567"}
	require.NoError(t, db.Create(profile).Error)

	first := &ProfileView{ProfileID: profile.ID, IP: "10.0.0.1"}
	require.NoError(t, db.Create(first).Error)
	assert.True(t, first.IsUnique)

	repeat := &ProfileView{ProfileID: profile.ID, IP: "10.0.0.1"}
	require.NoError(t, db.Create(repeat).Error)
	assert.False(t, repeat.IsUnique)

	other := &ProfileView{ProfileID: profile.ID, IP: "10.0.0.2"}
	require.NoError(t, db.Create(other).Error)
	assert.True(t, other.IsUnique)
}
