// Package slug derives URL-safe ASCII slugs from arbitrary Unicode strings.
// Slugs serve as the human-readable part of a content record's uniqueness
// key (e.g. "winter-jacket-2026").
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// From converts s into a lowercase ASCII slug: accents are stripped via NFD
// decomposition, runs of non-alphanumeric characters collapse into single
// hyphens, and leading/trailing hyphens are trimmed.
func From(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from decomposition
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
