package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePrice(t *testing.T) {
	assert.Equal(t, "1500000", NormalizePrice("1,500,000"))
	assert.Equal(t, "2500000", NormalizePrice("AED 2.500.000"))
	assert.Equal(t, "", NormalizePrice("price on request"))
	assert.Equal(t, "", NormalizePrice(""))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1,500,000", FormatPrice("1500000"))
	assert.Equal(t, "950", FormatPrice("950"))
	assert.Equal(t, "12,000", FormatPrice("12000"))
	assert.Equal(t, "100", FormatPrice("100"))
	assert.Equal(t, "", FormatPrice(""))
	// non-digit input is normalized before formatting
	assert.Equal(t, "1,500,000", FormatPrice("1,500,000 AED"))
}

func TestPhone(t *testing.T) {
	ok, _ := Phone("+971 50 123 4567")
	assert.True(t, ok)

	ok, _ = Phone("(04) 123-4567")
	assert.True(t, ok)

	ok, msg := Phone("")
	assert.False(t, ok)
	assert.Equal(t, "Phone number is required", msg)

	// too short once whitespace is stripped
	ok, _ = Phone("+971 12")
	assert.False(t, ok)

	// 21 characters
	ok, _ = Phone("123456789012345678901")
	assert.False(t, ok)

	// letters are rejected outright
	ok, _ = Phone("call me maybe")
	assert.False(t, ok)

	// boundary: exactly 8 characters
	ok, _ = Phone("12345678")
	assert.True(t, ok)

	// boundary: exactly 20 characters
	ok, _ = Phone("12345678901234567890")
	assert.True(t, ok)

	// grouping characters count toward the length, matching the client rule
	ok, _ = Phone("+-()1234567")
	assert.True(t, ok)

	// whitespace does not count
	ok, _ = Phone("1 2 3 4 5 6 7")
	assert.False(t, ok)
}

func TestURLField(t *testing.T) {
	ok, _ := URLField("")
	assert.True(t, ok)

	ok, _ = URLField("https://instagram.com/ahmed.ali")
	assert.True(t, ok)

	ok, _ = URLField("instagram.com/ahmed.ali")
	assert.False(t, ok)

	ok, _ = URLField("not a url")
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	ok, _ := Slug("ahmed-ali")
	assert.True(t, ok)

	ok, _ = Slug("ab")
	assert.False(t, ok)

	ok, _ = Slug("Ahmed-Ali")
	assert.False(t, ok)

	ok, _ = Slug("ahmed ali")
	assert.False(t, ok)

	ok, _ = Slug("a-1")
	assert.True(t, ok)
}

func TestSlugFromName(t *testing.T) {
	assert.Equal(t, "ahmed-ali", SlugFromName("Ahmed Ali"))
	assert.Equal(t, "jose-garcia", SlugFromName("José García"))
}
