// pkg/utils/validation/fields.go
package validation

import (
	"net/url"
	"regexp"
	"strings"

	gosimple "github.com/gosimple/slug"
)

var (
	phoneChars = regexp.MustCompile(`^[0-9+\-\s()]+$`)
	slugChars  = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonDigits  = regexp.MustCompile(`[^0-9]`)
	spaces     = regexp.MustCompile(`\s`)
)

const (
	MinPhoneLength = 8
	MaxPhoneLength = 20
	MinSlugLength  = 3
)

// NormalizePrice strips everything but digits. An empty result is valid and
// rendered as "price on request".
func NormalizePrice(raw string) string {
	return nonDigits.ReplaceAllString(raw, "")
}

// FormatPrice renders a normalized price with thousands separators for
// display. Non-digit input is normalized first.
func FormatPrice(raw string) string {
	digits := NormalizePrice(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Phone checks a phone or WhatsApp number. Failing values are flagged, never
// discarded; the caller keeps the raw input.
func Phone(raw string) (bool, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, "Phone number is required"
	}
	if !phoneChars.MatchString(trimmed) {
		return false, "Phone number may only contain digits, spaces, +, - and parentheses"
	}

	// length is measured over the whitespace-stripped number, so grouping
	// characters like + - ( ) count toward it
	stripped := spaces.ReplaceAllString(trimmed, "")
	if len(stripped) < MinPhoneLength || len(stripped) > MaxPhoneLength {
		return false, "Phone number must be between 8 and 20 characters"
	}

	return true, ""
}

// URLField checks an optional social link. Empty is valid; anything else must
// parse as an absolute URL.
func URLField(raw string) (bool, string) {
	if raw == "" {
		return true, ""
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return false, "Must be a full URL including https://"
	}

	return true, ""
}

// Slug checks a public profile slug: lowercase letters, digits and hyphens,
// at least three characters.
func Slug(raw string) (bool, string) {
	if len(raw) < MinSlugLength {
		return false, "Slug must be at least 3 characters"
	}
	if !slugChars.MatchString(raw) {
		return false, "Slug may only contain lowercase letters, digits and hyphens"
	}

	return true, ""
}

// SlugFromName derives a URL-safe slug from a full name. Used for the first
// suggestion only; the user can edit it afterwards.
func SlugFromName(name string) string {
	return gosimple.Make(name)
}
