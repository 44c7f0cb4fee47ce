package builder

import (
	"regexp"
	"strings"
)

var wordSeparators = regexp.MustCompile(`[_\-\s]+`)

// DefaultLabeler converts a member name into a human-friendly label:
// underscores, dashes and camelCase boundaries become word breaks and each
// word is title-cased.
func DefaultLabeler(name string) string {
	var words []string
	for _, chunk := range wordSeparators.Split(name, -1) {
		words = append(words, camelWords(chunk)...)
	}
	var out []string
	for _, word := range words {
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		out = append(out, strings.ToUpper(lower[:1])+lower[1:])
	}
	return strings.Join(out, " ")
}

func camelWords(chunk string) []string {
	var words []string
	start := 0
	runes := []rune(chunk)
	for i := 1; i < len(runes); i++ {
		if camelBoundary(runes[i-1], runes[i]) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	if start < len(runes) {
		words = append(words, string(runes[start:]))
	}
	return words
}

func camelBoundary(prev, cur rune) bool {
	switch {
	case prev >= 'a' && prev <= 'z' && cur >= 'A' && cur <= 'Z':
		return true
	case isAlpha(prev) && cur >= '0' && cur <= '9':
		return true
	case prev >= '0' && prev <= '9' && isAlpha(cur):
		return true
	}
	return false
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
