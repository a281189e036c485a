package util

import (
	"strings"

	"golang.org/x/text/cases"
)

// NameContains reports whether term occurs in name, ignoring case.
// A blank term matches every name.
func NameContains(name, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	// a Caser keeps state, so each call gets its own
	fold := cases.Fold()
	return strings.Contains(fold.String(name), fold.String(term))
}
