// Package textutil holds the small pure-string helpers shared by the job
// catalog and registration flows: URL slugs and Rwanda phone normalization.
package textutil

import (
	"strings"
	"unicode"
)

// Slugify lowercases a title and reduces it to hyphen-separated ASCII words.
// Characters outside [a-z0-9], spaces and hyphens are dropped; runs of
// spaces, hyphens and underscores collapse to a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '_':
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// JobSlug derives the unique job slug: slugified title plus the first 8
// characters of the job's generated id.
func JobSlug(title, jobID string) string {
	shortID := jobID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	slug := Slugify(title)
	if slug == "" {
		return shortID
	}
	return slug + "-" + shortID
}

// FormatPhoneNumber normalizes a phone number to the +250 Rwanda format.
// Inputs that do not match any known shape are returned unchanged.
func FormatPhoneNumber(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()

	switch {
	case strings.HasPrefix(d, "250"):
		return "+" + d
	case strings.HasPrefix(d, "0") && len(d) == 10:
		return "+250" + d[1:]
	case len(d) == 9:
		return "+250" + d
	}
	return phone
}
