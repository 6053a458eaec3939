package util

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

const maxSlugLength = 50

// Slugify converts a document title to a URL-safe slug. Blank titles
// produce "untitled".
func Slugify(title string) string {
	slug := strings.ToLower(title)

	// Replace spaces and special characters with hyphens
	slug = nonSlugChars.ReplaceAllString(slug, "-")

	// Remove leading/trailing hyphens
	slug = strings.Trim(slug, "-")

	// Limit length for readability
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
		// Remove trailing hyphen if truncation created one
		slug = strings.TrimRight(slug, "-")
	}

	if slug == "" {
		return "untitled"
	}
	return slug
}
