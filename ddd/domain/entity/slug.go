package entity

import (
	"strings"
	"unicode"
)

// SlugFallback is used when a title has no alphanumeric characters.
const SlugFallback = "article"

// Slugify lower-cases title, collapses every run of non-alphanumeric
// characters to one hyphen and trims leading and trailing hyphens.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	if b.Len() == 0 {
		return SlugFallback
	}
	return b.String()
}
