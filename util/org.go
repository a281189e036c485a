package util

import (
	"strings"
	"unicode"
)

// NormalizeOrgName trims surrounding whitespace and collapses inner runs of spaces
// Use this function whenever accepting org names from external sources
func NormalizeOrgName(org string) string {
	return strings.Join(strings.Fields(org), " ")
}

// Slugify derives a URL-safe slug from an organization name
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dashes
	for _, r := range strings.ToLower(NormalizeOrgName(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
