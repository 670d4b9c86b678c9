package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Slug converts a display string into an id segment.
// Accents are stripped, letters are lowercased, anything other than letters,
// digits, whitespace and hyphens is dropped, and each remaining whitespace
// rune becomes a hyphen.
// Example: "My API (v2.0) - Production" -> "my-api-v20---production"
// Example: "Café Owners" -> "cafe-owners"
func Slug(s string) string {
	if s == "" {
		return ""
	}
	// Casers carry state and must not be shared across goroutines.
	s = cases.Lower(language.Und).String(norm.NFKD.String(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "-")
}
