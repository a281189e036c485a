// Package util provides helpers shared by the store server handlers.
//
//revive:disable-next-line:var-naming
package util

import (
	"strings"
)

// maxKeyLength is the longest document key ArangoDB accepts
const maxKeyLength = 254

var keyReplacer = strings.NewReplacer(
	" ", "-",
	"/", "-",
	"[", "",
	"]", "",
	"(", "",
	")", "",
)

// SanitizeKey rewrites key into a form ArangoDB accepts:
// no surrounding whitespace, no spaces, slashes or brackets
func SanitizeKey(key string) string {
	return keyReplacer.Replace(strings.TrimSpace(key))
}

// IsValidKey reports whether an org_id or user_id from a request path can be
// used as a document key unchanged
func IsValidKey(key string) bool {
	return key != "" && len(key) <= maxKeyLength && SanitizeKey(key) == key
}
