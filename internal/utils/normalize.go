package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases and strips combining marks so "Pósters" and "posters"
// compare equal.
func Fold(s string) string {
	t := norm.NFKD.String(s)
	b := make([]rune, 0, len(t))
	for _, r := range t {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b = append(b, unicode.ToLower(r))
	}
	return string(b)
}

// ContainsFold reports whether substr occurs in s under case- and
// accent-insensitive comparison. An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if strings.TrimSpace(substr) == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(strings.TrimSpace(substr)))
}

// TrimMax trims a string to a maximum length.
func TrimMax(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
