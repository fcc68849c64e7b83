package common

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input and collapses every run of non-alphanumeric
// characters into a single hyphen. When the input yields nothing usable it
// falls back to the given default.
func Slugify(input, fallback string) string {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	return slug
}

func slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(nonSlugChars.ReplaceAllString(lower, "-"), "-")
}
