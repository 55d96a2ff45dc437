package logic

import (
	"strings"
	"unicode"
)

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsFold(haystack, needle string) bool {
	needle = lower(needle)
	if needle == "" {
		return false
	}
	return strings.Contains(lower(haystack), needle)
}

// slug lower-cases s and collapses every run of non-alphanumerics into "-"
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
