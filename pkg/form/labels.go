package form

import (
	"regexp"
	"strings"
	"unicode"
)

var labelSeparators = regexp.MustCompile(`[_\-\s.]+`)

// DefaultLabel derives a human label from a field name: separators and
// camelCase boundaries become spaces and every word is capitalised, so
// "type_of_clothing" and "typeOfClothing" both read "Type Of Clothing".
func DefaultLabel(name string) string {
	var words []string
	for _, chunk := range labelSeparators.Split(strings.TrimSpace(name), -1) {
		for _, word := range splitCamelWords(chunk) {
			words = append(words, capitalise(word))
		}
	}
	return strings.Join(words, " ")
}

func splitCamelWords(chunk string) []string {
	if chunk == "" {
		return nil
	}
	runes := []rune(chunk)
	var (
		words []string
		start int
	)
	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if (unicode.IsLower(prev) && unicode.IsUpper(cur)) ||
			(unicode.IsLetter(prev) && unicode.IsDigit(cur)) ||
			(unicode.IsDigit(prev) && unicode.IsLetter(cur)) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

func capitalise(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
