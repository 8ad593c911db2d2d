package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	separatorRe = regexp.MustCompile(`[-_ ]+`)
	dashRunRe   = regexp.MustCompile(`-+`)
	invalidRe   = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify derives a URL-stable identifier from a display name.
// CamelCase words are split on the case boundary, so "MyList" and
// "My List" both slugify to "my-list".
func Slugify(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range []rune(name) {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}

	slug := strings.ToLower(b.String())
	slug = separatorRe.ReplaceAllString(slug, "-")
	slug = dashRunRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	slug = invalidRe.ReplaceAllString(slug, "")
	return slug
}
