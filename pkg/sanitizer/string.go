package sanitizer

import (
	"strings"
	"unicode"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeServiceType cleans user-entered service labels ("  Oil   Change ").
func NormalizeServiceType(label string) string {
	return TrimAndNormalize(label)
}

// NormalizeNotes cleans free-text notes and reasons.
func NormalizeNotes(notes string) string {
	return TrimAndNormalize(notes)
}
